package maimai

import (
	"testing"
)

func guessMusic() *Music {
	return &Music{
		ID: "11", Title: "Oshama Scramble!", Type: "DX",
		DS:      []float64{4.0, 7.0, 10.0, 13.0},
		Artist:  "t+pazolite",
		Genre:   "niconico＆ボーカロイド",
		BPM:     210,
		Version: "maimai GreeN",
	}
}

func TestBuildHints(t *testing.T) {
	m := guessMusic()
	hints := BuildHints(m)
	want := map[string]bool{
		"这首歌的 BPM 是 210":            false,
		"这首歌的版本是 maimai GreeN":      false,
		"这首歌的曲师是 t+pazolite":        false,
		"这首歌的分类是 niconico＆ボーカロイド": false,
		"这首歌是 DX 谱面":                false,
		"这首歌的紫谱定数是 13.0":           false,
	}
	for _, h := range hints {
		if _, ok := want[h]; !ok {
			t.Errorf("意外的提示：%q", h)
			continue
		}
		if want[h] {
			t.Errorf("提示重复：%q", h)
		}
		want[h] = true
	}
	for h, seen := range want {
		if !seen {
			t.Errorf("缺少提示：%q", h)
		}
	}

	m.Type = "SD"
	hints = BuildHints(m)
	found := false
	for _, h := range hints {
		if h == "这首歌不是 DX 谱面" {
			found = true
		}
	}
	if !found {
		t.Error("SD谱面应提示「不是 DX 谱面」")
	}
}

func TestCheckAnswer(t *testing.T) {
	aliasMutex.Lock()
	aliasLocal = nil
	aliasRemote = []Alias{{SongID: "11", Name: "Oshama Scramble!", Alias: []string{"熊蜂", " 超天酱 "}}}
	aliasMutex.Unlock()
	defer func() {
		aliasMutex.Lock()
		aliasRemote = nil
		aliasLocal = nil
		aliasMutex.Unlock()
	}()

	m := guessMusic()
	tests := []struct {
		ans  string
		want bool
	}{
		{"11", true},
		{"oshama scramble!", true},
		{" OSHAMA Scramble! ", true},
		{"熊蜂", true},
		{"超天酱", true},
		{"", false},
		{"   ", false},
		{"365", false},
		{"oshama", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(m, tt.ans); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v，期望 %v", tt.ans, got, tt.want)
		}
	}
}

func TestSongIDsByAlias(t *testing.T) {
	aliasMutex.Lock()
	aliasRemote = []Alias{
		{SongID: "11", Alias: []string{"熊蜂"}},
		{SongID: "365", Alias: []string{"飞机"}},
	}
	aliasLocal = nil
	aliasMutex.Unlock()
	defer func() {
		aliasMutex.Lock()
		aliasRemote = nil
		aliasLocal = nil
		aliasMutex.Unlock()
	}()

	if err := AddLocalAlias("365", "小飞机"); err != nil {
		t.Fatalf("AddLocalAlias出错：%v", err)
	}
	// 重复添加不产生重复记录
	if err := AddLocalAlias("365", "小飞机"); err != nil {
		t.Fatalf("AddLocalAlias出错：%v", err)
	}

	if got := SongIDsByAlias(" 熊蜂 "); len(got) != 1 || got[0] != "11" {
		t.Errorf("SongIDsByAlias(熊蜂) = %v", got)
	}
	if got := SongIDsByAlias("小飞机"); len(got) != 1 || got[0] != "365" {
		t.Errorf("SongIDsByAlias(小飞机) = %v", got)
	}
	if got := SongIDsByAlias("不存在"); got != nil {
		t.Errorf("SongIDsByAlias(不存在) = %v", got)
	}
	if got := AliasesByID("365"); len(got) != 2 {
		t.Errorf("AliasesByID(365) = %v，期望2条", got)
	}
}
