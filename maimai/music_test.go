package maimai

import (
	"strings"
	"testing"
)

func testList() List {
	return List{
		{
			ID: "11", Title: "Oshama Scramble!", Type: "DX",
			DS: []float64{4.0, 7.0, 10.0, 13.0}, Level: []string{"4", "7", "10", "13"},
			Charts: []Chart{{Charter: "-"}, {Charter: "-"}, {Charter: "某谱师"}, {Charter: "mai-Star"}},
			Artist: "t+pazolite", Genre: "niconico＆ボーカロイド", BPM: 210, Version: "maimai GreeN",
			Stats: []ChartStat{{Count: 100}, {Count: 200}, {Count: 300}, {Count: 4000}},
		},
		{
			ID: "365", Title: "飛んでったアイツ", Type: "SD",
			DS: []float64{3.0, 5.0, 8.5, 11.2}, Level: []string{"3", "5", "8+", "11"},
			Charts: []Chart{{Charter: "-"}, {Charter: "-"}, {Charter: "譜面-100号"}, {Charter: "某谱师"}},
			Artist: "削除", Genre: "maimai", BPM: 165, Version: "maimai MiLK",
		},
		{
			ID: "11364", Title: "QZKago Requiem", Type: "DX",
			DS: []float64{6.0, 8.7, 12.4, 14.6}, Level: []string{"6", "8+", "12+", "14+"},
			Charts: []Chart{{Charter: "-"}, {Charter: "-"}, {Charter: "某谱师"}, {Charter: "譜面-100号"}},
			Artist: "t+pazolite", Genre: "音击&中二节奏", BPM: 260, Version: "maimai でらっくす Splash",
		},
	}
}

func TestListByIDAndTitle(t *testing.T) {
	list := testList()
	if m := list.ByID("365"); m == nil || m.Title != "飛んでったアイツ" {
		t.Errorf("ByID(365) = %v", m)
	}
	if m := list.ByID("999"); m != nil {
		t.Errorf("ByID(999)应为nil，实际 %v", m)
	}
	if m := list.ByTitle("oshama scramble!"); m == nil || m.ID != "11" {
		t.Errorf("ByTitle应忽略大小写，实际 %v", m)
	}
}

func TestTitleSearch(t *testing.T) {
	list := testList()
	tests := []struct {
		name string
		want int
	}{
		{"oshama", 1},
		{"qzkago", 1},
		{"不存在的歌", 0},
	}
	for _, tt := range tests {
		if got := list.TitleSearch(tt.name); len(got) != tt.want {
			t.Errorf("TitleSearch(%q)结果数 = %d，期望 %d", tt.name, len(got), tt.want)
		}
	}
}

func TestArtistAndCharterSearch(t *testing.T) {
	list := testList()
	if got := list.ArtistSearch("t+pazolite"); len(got) != 2 {
		t.Errorf("ArtistSearch结果数 = %d，期望 2", len(got))
	}
	got := list.CharterSearch("譜面-100号")
	if len(got) != 2 {
		t.Fatalf("CharterSearch结果数 = %d，期望 2", len(got))
	}
	// 同曲多难度命中同一谱师时只出现一次
	seen := map[string]bool{}
	for _, m := range got {
		if seen[m.ID] {
			t.Errorf("曲目%s重复出现", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestFilterDS(t *testing.T) {
	list := testList()
	got := list.FilterDS(13.0, 14.0)
	if len(got) != 1 || got[0].ID != "11" {
		t.Errorf("FilterDS(13, 14) = %v", got)
	}
	if got = list.FilterDS(15.0, 16.0); len(got) != 0 {
		t.Errorf("FilterDS(15, 16)应为空，实际%d条", len(got))
	}
}

func TestFilterLevel(t *testing.T) {
	list := testList()
	// 不限难度序号
	if got := list.FilterLevel("8+", nil, nil); len(got) != 2 {
		t.Errorf("FilterLevel(8+)结果数 = %d，期望 2", len(got))
	}
	// 限定红谱
	if got := list.FilterLevel("8+", []int{2}, nil); len(got) != 1 || got[0].ID != "365" {
		t.Errorf("FilterLevel(8+, 红) = %v", got)
	}
	// 限定谱面类型
	if got := list.FilterLevel("8+", nil, []string{"SD"}); len(got) != 1 || got[0].ID != "365" {
		t.Errorf("FilterLevel(8+, SD) = %v", got)
	}
	if got := list.FilterLevel("", nil, []string{"DX"}); len(got) != 2 {
		t.Errorf("FilterLevel(全部DX)结果数 = %d，期望 2", len(got))
	}
}

func TestFilterBPM(t *testing.T) {
	list := testList()
	if got := list.FilterBPM(200, 260); len(got) != 2 {
		t.Errorf("FilterBPM(200, 260)结果数 = %d，期望 2", len(got))
	}
	if got := list.FilterBPM(165, 165); len(got) != 1 || got[0].ID != "365" {
		t.Errorf("FilterBPM(165, 165) = %v", got)
	}
}

func TestPlayCount(t *testing.T) {
	list := testList()
	if got := list.ByID("11").PlayCount(); got != 4600 {
		t.Errorf("PlayCount = %v，期望 4600", got)
	}
	if got := list.ByID("365").PlayCount(); got != 0 {
		t.Errorf("无统计信息时PlayCount = %v，期望 0", got)
	}
}

func TestDSStringAndCard(t *testing.T) {
	m := testList().ByID("11")
	if got := m.DSString(); got != "4.0/7.0/10.0/13.0" {
		t.Errorf("DSString = %q", got)
	}
	card := m.Card()
	for _, want := range []string{"ID.11 - Oshama Scramble!", "类型：DX", "曲师：t+pazolite", "BPM：210", "Master 13(13.0)"} {
		if !strings.Contains(card, want) {
			t.Errorf("Card缺少 %q：\n%s", want, card)
		}
	}
}

func TestNotesTotal(t *testing.T) {
	n := Notes{Tap: 400, Hold: 50, Slide: 30, Touch: 20, Break: 10}
	if got := n.Total(); got != 510 {
		t.Errorf("Total = %d，期望 510", got)
	}
}
