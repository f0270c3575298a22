package achievement

// Category 表示成就考核的统计维度。
type Category string

const (
	// CategoryStreak 考核连续达标天数
	CategoryStreak Category = "streak"
	// CategoryConsumption 考核累计饮水总量（毫升）
	CategoryConsumption Category = "consumption"
	// CategoryConsistency 考核累计达标天数
	CategoryConsistency Category = "consistency"
)

// Achievement 定义了成就目录中的一个静态条目。
// 目录在运行时不可变，阈值一经发布就不再调整。
type Achievement struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	// Requirement 是该成就的数值门槛，含义由Category决定
	Requirement int64 `json:"requirement"`
}

// catalog 是全部成就的静态目录。
var catalog = []Achievement{
	{ID: "streak_3", Title: "Getting Started", Description: "Reach a 3-day streak", Icon: "droplet", Category: CategoryStreak, Requirement: 3},
	{ID: "streak_7", Title: "One Week Warrior", Description: "Maintain a 7-day streak", Icon: "award", Category: CategoryStreak, Requirement: 7},
	{ID: "streak_14", Title: "Two Week Champion", Description: "Keep going for 14 days", Icon: "star", Category: CategoryStreak, Requirement: 14},
	{ID: "streak_30", Title: "Monthly Master", Description: "Hit a 30-day streak", Icon: "trending-up", Category: CategoryStreak, Requirement: 30},
	{ID: "streak_60", Title: "Hydration Hero", Description: "Achieve a 60-day streak", Icon: "zap", Category: CategoryStreak, Requirement: 60},
	{ID: "streak_90", Title: "Aqua Legend", Description: "Complete a 90-day streak", Icon: "shield", Category: CategoryStreak, Requirement: 90},
	{ID: "total_50L", Title: "First 50 Liters", Description: "Drink 50 liters total", Icon: "droplet", Category: CategoryConsumption, Requirement: 50000},
	{ID: "total_100L", Title: "Century Club", Description: "Drink 100 liters total", Icon: "activity", Category: CategoryConsumption, Requirement: 100000},
	{ID: "total_500L", Title: "Half Ton", Description: "Drink 500 liters total", Icon: "award", Category: CategoryConsumption, Requirement: 500000},
	{ID: "total_1000L", Title: "One Ton Wonder", Description: "Drink 1000 liters total", Icon: "star", Category: CategoryConsumption, Requirement: 1000000},
	{ID: "consistency_7", Title: "Weekly Warrior", Description: "Meet your goal 7 times", Icon: "check-circle", Category: CategoryConsistency, Requirement: 7},
	{ID: "consistency_30", Title: "Monthly Achiever", Description: "Meet your goal 30 times", Icon: "target", Category: CategoryConsistency, Requirement: 30},
	{ID: "consistency_100", Title: "Century Achiever", Description: "Meet your goal 100 times", Icon: "award", Category: CategoryConsistency, Requirement: 100},
	{ID: "consistency_365", Title: "Year of Hydration", Description: "Meet your goal 365 times", Icon: "shield", Category: CategoryConsistency, Requirement: 365},
}

// Catalog 返回成就目录的浅拷贝，调用方不能修改目录本身。
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// FindByID 按ID在目录中查找成就。
func FindByID(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
