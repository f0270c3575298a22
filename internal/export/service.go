package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SlpAus/hydrotrack-backend/internal/intake"
	"github.com/SlpAus/hydrotrack-backend/internal/stats"
)

// Options 控制CSV报告包含的区块。
type Options struct {
	IncludeStats bool
	IncludeLogs  bool
}

// Filename 返回导出文件的标准文件名，按导出日期命名。
func Filename(now time.Time) string {
	return fmt.Sprintf("hydrotrack_export_%s.csv", now.Format(stats.DateLayout))
}

// BuildCSV 把事件日志、统计快照和目标拼装成文本报告。
// 格式沿用既有客户端的导出布局：元数据头、可选统计块、
// 按日期分组（最新在前）的逐条记录块。纯文本拼装，没有副作用。
func BuildCSV(events []intake.IntakeEvent, snapshot *stats.Snapshot, goal int, userName string, opts Options, now time.Time) string {
	var b strings.Builder

	// 元数据头
	fmt.Fprintf(&b, "HydroTrack Export - %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "User: %s\n", userName)
	fmt.Fprintf(&b, "Daily Goal: %d ml\n", goal)
	b.WriteString("\n")

	// 统计块
	if opts.IncludeStats && snapshot != nil {
		b.WriteString("=== STATISTICS ===\n")
		fmt.Fprintf(&b, "Current Streak,%d days\n", snapshot.CurrentStreak)
		fmt.Fprintf(&b, "Best Streak,%d days\n", snapshot.BestStreak)
		fmt.Fprintf(&b, "Total Days Met Goal,%d days\n", snapshot.TotalDaysMetGoal)
		fmt.Fprintf(&b, "Total Water Consumed,%.2f L\n", float64(snapshot.TotalWaterConsumed)/1000)
		fmt.Fprintf(&b, "Last Activity,%s\n", snapshot.LastActivityDate)
		b.WriteString("\n")
	}

	// 逐条记录块
	if opts.IncludeLogs {
		b.WriteString("=== WATER INTAKE LOGS ===\n")
		if len(events) == 0 {
			b.WriteString("No water intake logs available.\n")
			return b.String()
		}

		b.WriteString("Date,Time,Amount (ml),Daily Total (ml),Goal Met\n")

		// 按日期分组，并预先算好每天的总量
		byDate := make(map[string][]intake.IntakeEvent)
		dailyTotal := make(map[string]int64)
		for _, ev := range events {
			byDate[ev.Date] = append(byDate[ev.Date], ev)
			dailyTotal[ev.Date] += int64(ev.AmountMl)
		}

		dates := make([]string, 0, len(byDate))
		for date := range byDate {
			dates = append(dates, date)
		}
		// 日期降序，最新在前
		sort.Sort(sort.Reverse(sort.StringSlice(dates)))

		for _, date := range dates {
			dayEvents := byDate[date]
			// 同一天内按时间戳降序
			sort.Slice(dayEvents, func(i, j int) bool {
				return dayEvents[i].TimestampMs > dayEvents[j].TimestampMs
			})

			goalMet := "No"
			if dailyTotal[date] >= int64(goal) {
				goalMet = "Yes"
			}

			for _, ev := range dayEvents {
				t := time.UnixMilli(ev.TimestampMs)
				fmt.Fprintf(&b, "%s,%s,%d,%d,%s\n",
					t.Format(stats.DateLayout), t.Format("15:04:05"),
					ev.AmountMl, dailyTotal[date], goalMet)
			}
		}
	}

	return b.String()
}
