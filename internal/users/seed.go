package users

import "time"

// DefaultSeed returns the directory's initial users.
func DefaultSeed() []User {
	at := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return []User{
		{ID: 1, Username: "张三", Email: "zhangsan@example.com", Status: StatusActive, CreatedAt: at("2024-01-15T08:30:00Z"), UpdatedAt: at("2024-01-15T08:30:00Z")},
		{ID: 2, Username: "李四", Email: "lisi@example.com", Status: StatusInactive, CreatedAt: at("2024-01-16T09:15:00Z"), UpdatedAt: at("2024-01-16T09:15:00Z")},
		{ID: 3, Username: "王五", Email: "wangwu@example.com", Status: StatusActive, CreatedAt: at("2024-01-17T10:45:00Z"), UpdatedAt: at("2024-01-17T10:45:00Z")},
		{ID: 4, Username: "赵六", Email: "zhaoliu@example.com", Status: StatusActive, CreatedAt: at("2024-01-18T14:20:00Z"), UpdatedAt: at("2024-01-18T14:20:00Z")},
		{ID: 5, Username: "钱七", Email: "qianqi@example.com", Status: StatusInactive, CreatedAt: at("2024-01-19T16:30:00Z"), UpdatedAt: at("2024-01-19T16:30:00Z")},
	}
}
