package forward

import (
	"fmt"
	"strings"

	"relay_bot/internal/telegram/models"
)

// Outcome 单个频道的发送结果，Err 为 nil 表示成功
type Outcome struct {
	Destination string
	Err         error
}

// Success 是否发送成功
func (o Outcome) Success() bool {
	return o.Err == nil
}

// Report 一次转发的汇总结果
type Report struct {
	TaskID    string
	Kind      models.ContentKind
	Total     int       // 目标频道数
	Successes int       // 成功数
	Outcomes  []Outcome // 按频道尝试顺序
}

func newReport(taskID string, kind models.ContentKind, outcomes []Outcome) *Report {
	report := &Report{
		TaskID:   taskID,
		Kind:     kind,
		Total:    len(outcomes),
		Outcomes: outcomes,
	}
	for _, o := range outcomes {
		if o.Success() {
			report.Successes++
		}
	}
	return report
}

// FailedCount 失败数
func (r *Report) FailedCount() int {
	return r.Total - r.Successes
}

// Failures 失败列表，格式 "{频道}: {错误}"，保持尝试顺序
func (r *Report) Failures() []string {
	failures := make([]string, 0, r.FailedCount())
	for _, o := range r.Outcomes {
		if o.Success() {
			continue
		}
		failures = append(failures, fmt.Sprintf("%s: %s", o.Destination, o.Err.Error()))
	}
	return failures
}

// Text 构造回复给操作员的报告文本（纯文本）
func (r *Report) Text() string {
	var text strings.Builder
	text.WriteString(fmt.Sprintf("✅ Enviado a %d/%d canales", r.Successes, r.Total))

	failures := r.Failures()
	if len(failures) > 0 {
		text.WriteString(fmt.Sprintf("\n❌ %d fallidos:\n", len(failures)))
		for _, failure := range failures {
			text.WriteString("• " + failure + "\n")
		}
	}

	return text.String()
}
