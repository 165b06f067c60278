package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kvreport/internal/cache"
	"kvreport/internal/config"
	"kvreport/internal/kiotviet"
	"kvreport/internal/render"
	"kvreport/internal/report"
)

const defaultQuestion = "Top 10 sản phẩm bán chạy nhất năm 2024"

var exitWords = map[string]bool{"quit": true, "exit": true, "thoat": true}

var yearRe = regexp.MustCompile(`\d{4}`)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client := kiotviet.NewClient(kiotviet.Config{
		Retailer:     cfg.Retailer,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		BaseURL:      cfg.BaseURL,
		AuthURL:      cfg.AuthURL,
	})

	ctx := context.Background()

	fmt.Printf("Khởi động công cụ báo cáo KiotViet\nRetailer: %s\n%s\n", cfg.Retailer, strings.Repeat("-", 50))

	if err := client.Authenticate(ctx); err != nil {
		log.Fatalf("Không thể kết nối KiotViet API: %v", err)
	}
	fmt.Println("Đã kết nối thành công với KiotViet API")

	reports := report.NewService(client)
	reports.SetProgress(func(runID string, period report.Period, page, fetched int) {
		fmt.Printf("Đang tải hóa đơn... (trang %d, %d hóa đơn)\n", page, fetched)
	})

	if cfg.CacheEnabled {
		rc := cache.NewRedis(cfg.RedisAddr, 0)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err == nil {
			reports.SetCache(rc)
		}
		cancel()
	}

	printHints()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s\n", strings.Repeat("=", 50))
		fmt.Print("Nhập câu hỏi của bạn (hoặc 'quit' để thoát): ")

		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())

		if exitWords[strings.ToLower(question)] {
			fmt.Println("Tạm biệt!")
			return
		}

		if question == "" {
			fmt.Println("Sử dụng câu hỏi mặc định...")
			question = defaultQuestion
		}

		answer(ctx, reports, question)
	}
}

func answer(ctx context.Context, reports *report.Service, question string) {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "tiềm năng"):
		rep, err := reports.Potential(ctx, periodFromText(q), 0)
		if err != nil {
			fmt.Printf("Lỗi: %v\n", err)
			return
		}
		render.RenderPotential(os.Stdout, rep)

	case strings.Contains(q, "tổng hợp") || strings.Contains(q, "so sánh"):
		rep, err := reports.Comparison(ctx, periodFromText(q), 0)
		if err != nil {
			fmt.Printf("Lỗi: %v\n", err)
			return
		}
		render.RenderComparison(os.Stdout, rep)

	default:
		rep, err := reports.Answer(ctx, question)
		if errors.Is(err, report.ErrNotUnderstood) {
			printHints()
			return
		}
		if err != nil {
			fmt.Printf("Lỗi: %v\n", err)
			return
		}
		render.RenderTopProducts(os.Stdout, rep)
	}
}

// periodFromText pulls a 4-digit year out of the question, defaulting to
// the current year. Potential and comparison reports run over whole years.
func periodFromText(q string) report.Period {
	year := time.Now().Year()
	if m := yearRe.FindString(q); m != "" {
		year, _ = strconv.Atoi(m)
	}
	return report.YearPeriod(year)
}

func printHints() {
	fmt.Println("\nBạn có thể đặt câu hỏi như:")
	fmt.Println("- Top 10 sản phẩm bán chạy nhất trong tháng 8")
	fmt.Println("- Top 5 sản phẩm bán chạy nhất tháng 7")
	fmt.Println("- Top 10 sản phẩm bán chạy nhất năm 2024")
	fmt.Println("- Top 10 sản phẩm có nhiều đơn hàng nhất năm 2024")
	fmt.Println("- Top 10 sản phẩm mang lại lợi nhuận nhiều nhất năm 2024")
	fmt.Println("- Sản phẩm tiềm năng cần đẩy mạnh marketing năm 2024")
	fmt.Println("- Báo cáo tổng hợp năm 2024")
}
