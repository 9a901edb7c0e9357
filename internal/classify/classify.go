// Package classify assigns category tags to care-case messages using a
// fixed keyword rule table. Classification is pure: the same content always
// yields the same tags and importance flag.
package classify

import "strings"

// Tag values form a closed set; adding a category means adding a rule,
// not touching the evaluation loop.
const (
	TagPayment  = "payment"
	TagService  = "service"
	TagSchedule = "schedule"
	TagIssue    = "issue"
)

type rule struct {
	tag       string
	important bool
	keywords  []string
}

// rules are evaluated in order; each group matches independently, so a
// message can carry zero or several tags.
var rules = []rule{
	{
		tag:       TagPayment,
		important: true,
		keywords: []string{
			"費用", "繳費", "付款", "收費", "月費", "帳單",
			"發票", "匯款", "補助", "自付額", "退費", "line pay",
		},
	},
	{
		tag: TagService,
		keywords: []string{
			"服務", "照顧", "照護", "居服", "沐浴", "洗澡",
			"備餐", "陪同", "復健", "打掃", "換藥", "量血壓",
		},
	},
	{
		tag: TagSchedule,
		keywords: []string{
			"時間", "預約", "改期", "取消", "排班", "請假",
			"幾點", "下週", "明天", "調整時段",
		},
	},
	{
		tag:       TagIssue,
		important: true,
		keywords: []string{
			"問題", "跌倒", "受傷", "不舒服", "緊急", "投訴",
			"抱怨", "客訴", "狀況", "送醫", "發燒",
		},
	},
}

// Tags returns the valid tag set in rule order.
func Tags() []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.tag)
	}
	return out
}

// ValidTag reports whether tag belongs to the closed tag set.
func ValidTag(tag string) bool {
	for _, r := range rules {
		if r.tag == tag {
			return true
		}
	}
	return false
}

// Classify maps message content to its category tags and importance flag.
// Matching is case-insensitive substring matching; importance is raised only
// by the payment and issue groups.
func Classify(content string) (tags []string, important bool) {
	lower := strings.ToLower(content)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, r.tag)
				if r.important {
					important = true
				}
				break
			}
		}
	}
	return tags, important
}
