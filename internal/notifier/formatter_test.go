package notifier

import (
	"strings"
	"testing"

	"DormPower/internal/model"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{120, "120.0"},
		{3, "3.0"},
		{0, "0.0"},
		{3.5, "3.5"},
		{12.34, "12.34"},
		{-1.25, "-1.25"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestEscapeNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{120, `120\.0`},
		{12.34, `12\.34`},
		{-1.25, `\-1\.25`},
	}
	for _, tt := range tests {
		if got := EscapeNumber(tt.v); got != tt.want {
			t.Errorf("EscapeNumber(%v): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestFormatBalanceReport(t *testing.T) {
	got := FormatBalanceReport(model.Balances{Lighting: 120, AirConditioning: 3})
	want := "💡 照明剩余电量：120\\.0 度（充足）\n" +
		"❄️ 空调剩余电量：3\\.0 度（⚠️警告）\n\n"
	if got != want {
		t.Errorf("unexpected report:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatBalanceReport_StatusLabels(t *testing.T) {
	tests := []struct {
		lt, ac    float64
		ltLabel   string
		acLabel   string
		isWarning bool
	}{
		{100.0, 5.0, "还行", "⚠️警告", true},
		{100.5, 5.5, "充足", "还行", false},
		{5.0, 200, "⚠️警告", "充足", true},
	}
	for _, tt := range tests {
		report := FormatBalanceReport(model.Balances{Lighting: tt.lt, AirConditioning: tt.ac})
		lines := strings.Split(report, "\n")
		if !strings.Contains(lines[0], "（"+tt.ltLabel+"）") {
			t.Errorf("lt=%v: expected label %q in %q", tt.lt, tt.ltLabel, lines[0])
		}
		if !strings.Contains(lines[1], "（"+tt.acLabel+"）") {
			t.Errorf("ac=%v: expected label %q in %q", tt.ac, tt.acLabel, lines[1])
		}
		if got := strings.Contains(report, model.WarningLabel); got != tt.isWarning {
			t.Errorf("lt=%v ac=%v: expected warning=%v", tt.lt, tt.ac, tt.isWarning)
		}
	}
}

func TestBuildNotification(t *testing.T) {
	title, content := BuildNotification(model.Balances{Lighting: 120, AirConditioning: 3})
	if title != WarningTitle {
		t.Errorf("expected warning title, got %q", title)
	}
	if !strings.HasSuffix(content, warningSuffix) {
		t.Errorf("expected warning suffix, got %q", content)
	}

	title, content = BuildNotification(model.Balances{Lighting: 120, AirConditioning: 50})
	if title != RoutineTitle {
		t.Errorf("expected routine title, got %q", title)
	}
	if !strings.HasSuffix(content, routineSuffix) {
		t.Errorf("expected routine suffix, got %q", content)
	}
}
