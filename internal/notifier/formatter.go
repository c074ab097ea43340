package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"DormPower/internal/model"
)

// Notification titles and report endings.
const (
	WarningTitle = "⚠️宿舍电量预警⚠️"
	RoutineTitle = "🏠宿舍电量通报🏠"

	warningSuffix = "⚠️ 电量不足，请尽快充电！"
	routineSuffix = "请及时关注电量，避免设备关闭。"
)

// FormatBalanceReport formats both balances with their status labels for MarkdownV2.
func FormatBalanceReport(b model.Balances) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💡 照明剩余电量：%s 度（%s）\n",
		EscapeNumber(b.Lighting), model.Classify(b.Lighting).Label()))
	sb.WriteString(fmt.Sprintf("❄️ 空调剩余电量：%s 度（%s）\n\n",
		EscapeNumber(b.AirConditioning), model.Classify(b.AirConditioning).Label()))
	return sb.String()
}

// BuildNotification returns the title and full content for b: the report plus
// a warning ending when any balance is low, a routine ending otherwise.
func BuildNotification(b model.Balances) (title, content string) {
	report := FormatBalanceReport(b)
	if b.Low() {
		return WarningTitle, report + warningSuffix
	}
	return RoutineTitle, report + routineSuffix
}

// FormatNumber renders v in its shortest form, always keeping a fractional
// part: 120 -> "120.0", 3.5 -> "3.5".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	// NaN and ±Inf stay as they are.
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// EscapeNumber formats v and escapes the characters MarkdownV2 reserves.
func EscapeNumber(v float64) string {
	return markdownEscaper.Replace(FormatNumber(v))
}

var markdownEscaper = strings.NewReplacer(".", `\.`, "-", `\-`)
