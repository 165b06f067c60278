package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"kvreport/internal/report"
)

const (
	headerRule = 80
	entryRule  = 60
	maxNameLen = 50
)

// RenderTopProducts writes one ranked report in the console layout
// analysts are used to.
func RenderTopProducts(w io.Writer, rep *report.Report) {
	title := reportTitle(rep.Request.Metric, rep.Request.TopN, rep.Request.Period)
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", headerRule))
	renderFetchNotice(w, rep.Fetch)

	if len(rep.Ranking) == 0 {
		fmt.Fprintln(w, "Không có dữ liệu trong khoảng thời gian này")
		return
	}

	totalRevenue := rep.TotalRevenue()

	for i, m := range rep.Ranking {
		fmt.Fprintf(w, "%2d. %s\n", i+1, truncateName(m.ProductName))

		switch rep.Request.Metric {
		case report.MetricRevenue:
			share := 0.0
			if totalRevenue.IsPositive() {
				share = m.TotalRevenue.Div(totalRevenue).InexactFloat64() * 100
			}
			fmt.Fprintf(w, "    Doanh thu: %s VNĐ (%.1f%%)\n", FormatVND(m.TotalRevenue), share)
			fmt.Fprintf(w, "    Tổng số lượng bán: %s\n", FormatQuantity(m.TotalQuantity))
			fmt.Fprintf(w, "    Số đơn hàng: %d\n", m.InvoiceCount)
			fmt.Fprintf(w, "    Giá trung bình: %s VNĐ/sản phẩm\n", FormatVND(m.AvgPrice()))
		case report.MetricOrderCount:
			fmt.Fprintf(w, "    Số đơn hàng: %d\n", m.InvoiceCount)
			fmt.Fprintf(w, "    Tổng số lượng bán: %s\n", FormatQuantity(m.TotalQuantity))
			fmt.Fprintf(w, "    Doanh thu: %s VNĐ\n", FormatVND(m.TotalRevenue))
		default:
			fmt.Fprintf(w, "    Số lượng bán: %s\n", FormatQuantity(m.TotalQuantity))
			fmt.Fprintf(w, "    Doanh thu: %s VNĐ\n", FormatVND(m.TotalRevenue))
			fmt.Fprintf(w, "    Số hóa đơn: %d\n", m.InvoiceCount)
		}
		fmt.Fprintln(w, strings.Repeat("-", entryRule))
	}

	if rep.Request.Metric == report.MetricRevenue {
		fmt.Fprintf(w, "\nTổng doanh thu top %d: %s VNĐ\n", len(rep.Ranking), FormatVND(totalRevenue))
	}
}

// RenderPotential writes the marketing-potential report.
func RenderPotential(w io.Writer, rep *report.PotentialReport) {
	fmt.Fprintf(w, "\nTOP %d SẢN PHẨM TIỀM NĂNG CẦN ĐẨY MẠNH QUẢNG CÁO — %s\n",
		rep.Config.TopN, strings.ToUpper(rep.Period.Label()))
	fmt.Fprintf(w, "Tiêu chí: Doanh thu ≥ %s + Số đơn ≤ %d + Giá trung bình ≥ %s\n",
		FormatVND(rep.Config.MinRevenue), rep.Config.MaxInvoiceCount, FormatVND(rep.Config.MinAvgPrice))
	fmt.Fprintln(w, strings.Repeat("=", headerRule))
	renderFetchNotice(w, rep.Fetch)

	if len(rep.Products) == 0 {
		fmt.Fprintln(w, "Không tìm thấy sản phẩm phù hợp với tiêu chí")
		return
	}

	for i, p := range rep.Products {
		fmt.Fprintf(w, "%2d. %s\n", i+1, truncateName(p.ProductName))
		fmt.Fprintf(w, "    Điểm tiềm năng: %.1f/100\n", p.Score)
		fmt.Fprintf(w, "    Doanh thu: %s VNĐ\n", FormatVND(p.TotalRevenue))
		fmt.Fprintf(w, "    Số đơn hàng: %d đơn (CẦN TĂNG)\n", p.InvoiceCount)
		fmt.Fprintf(w, "    Giá trung bình: %s VNĐ/sản phẩm\n", FormatVND(p.AvgPrice()))
		fmt.Fprintf(w, "    Doanh thu/đơn: %s VNĐ\n", FormatVND(p.RevenuePerOrder()))
		fmt.Fprintf(w, "    Số lượng/đơn: %.1f sản phẩm\n", p.AvgQuantityPerOrder())
		fmt.Fprintln(w, strings.Repeat("-", headerRule))
	}
}

// RenderComparison writes the order-count vs revenue comparison report.
func RenderComparison(w io.Writer, rep *report.ComparisonReport) {
	fmt.Fprintf(w, "\nBÁO CÁO PHÂN TÍCH TỔNG HỢP — %s\n%s\n",
		strings.ToUpper(rep.Period.Label()), strings.Repeat("=", headerRule))
	renderFetchNotice(w, rep.Fetch)

	fmt.Fprintln(w, "\nSẢN PHẨM XUẤT HIỆN TRONG CẢ HAI TOP:")
	if len(rep.Common) == 0 {
		fmt.Fprintln(w, "  Không có sản phẩm nào xuất hiện trong cả hai top")
	}
	for i, entry := range rep.Common {
		fmt.Fprintf(w, "  %d. %s\n", i+1, truncateName(entry.ProductName))
		fmt.Fprintf(w, "     Xếp hạng đơn hàng: #%d\n", entry.OrderRank)
		fmt.Fprintf(w, "     Xếp hạng doanh thu: #%d\n", entry.RevenueRank)
	}

	fmt.Fprintln(w, "\nPHÂN TÍCH CHIẾN LƯỢC:")
	fmt.Fprintf(w, "  Tổng số sản phẩm khác nhau trong 2 top: %d\n", rep.DistinctProduct)
	fmt.Fprintf(w, "  Sản phẩm cân bằng (cả đơn hàng & doanh thu): %d\n", len(rep.Common))
	fmt.Fprintf(w, "  Sản phẩm chỉ nhiều đơn hàng: %d\n", rep.OnlyOrderCount)
	fmt.Fprintf(w, "  Sản phẩm chỉ doanh thu cao: %d\n", rep.OnlyRevenue)
}

func reportTitle(metric report.Metric, topN int, period report.Period) string {
	label := strings.ToUpper(period.Label())
	switch metric {
	case report.MetricRevenue:
		return fmt.Sprintf("TOP %d SẢN PHẨM MANG LẠI DOANH THU NHIỀU NHẤT %s", topN, label)
	case report.MetricOrderCount:
		return fmt.Sprintf("TOP %d SẢN PHẨM CÓ NHIỀU ĐƠN HÀNG NHẤT %s", topN, label)
	default:
		return fmt.Sprintf("TOP %d SẢN PHẨM BÁN CHẠY NHẤT %s", topN, label)
	}
}

func renderFetchNotice(w io.Writer, fetch report.FetchInfo) {
	if fetch.FromCache {
		fmt.Fprintf(w, "Đã dùng %d hóa đơn từ cache\n", fetch.InvoiceCount)
		return
	}
	fmt.Fprintf(w, "Đã tải %d hóa đơn (%d trang)\n", fetch.InvoiceCount, fetch.Pages)
	if fetch.Status == report.FetchPartial {
		fmt.Fprintf(w, "CẢNH BÁO: dữ liệu không đầy đủ — %s\n", fetch.Error)
	}
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameLen {
		return name
	}
	return string(runes[:maxNameLen])
}

// FormatVND renders a money amount rounded to whole đồng with comma
// thousands grouping, e.g. 50,000,000.
func FormatVND(d decimal.Decimal) string {
	return groupDigits(d.Round(0).String())
}

// FormatQuantity renders a quantity, keeping a fraction only when the
// value is not a whole number (weighted goods).
func FormatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return groupDigits(strconv.FormatInt(int64(q), 10))
	}
	return strconv.FormatFloat(q, 'f', 1, 64)
}

func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
