package utils

import (
	"testing"

	zero "github.com/wdvxdr1123/ZeroBot"
)

func TestIsSuperUser(t *testing.T) {
	old := zero.BotConfig.SuperUsers
	zero.BotConfig.SuperUsers = []int64{123456789, 987}
	defer func() { zero.BotConfig.SuperUsers = old }()
	tests := []struct {
		userID int64
		want   bool
	}{
		{123456789, true},
		{987, true},
		{0, false},
		{12345678, false},
	}
	for _, tt := range tests {
		if got := IsSuperUser(tt.userID); got != tt.want {
			t.Errorf("IsSuperUser(%d) = %v，期望 %v", tt.userID, got, tt.want)
		}
	}
}
