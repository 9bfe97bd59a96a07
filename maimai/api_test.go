package maimai

import (
	"testing"

	"github.com/tidwall/gjson"
)

const musicDataSample = `[
  {
    "id": "11",
    "title": "Oshama Scramble!",
    "type": "DX",
    "ds": [4.0, 7.0, 10.0, 13.0],
    "level": ["4", "7", "10", "13"],
    "charts": [
      {"notes": [100, 10, 10, 5, 5], "charter": "-"},
      {"notes": [200, 20, 20, 10, 10], "charter": "-"},
      {"notes": [300, 30, 30, 15, 15], "charter": "某谱师"},
      {"notes": [400, 40, 40, 20, 20], "charter": "mai-Star"}
    ],
    "basic_info": {
      "artist": "t+pazolite",
      "genre": "niconico＆ボーカロイド",
      "bpm": 210,
      "from": "maimai GreeN",
      "is_new": false
    }
  },
  {
    "id": "365",
    "title": "飛んでったアイツ",
    "type": "SD",
    "ds": [3.0, 5.0, 8.5, 11.2],
    "level": ["3", "5", "8+", "11"],
    "charts": [
      {"notes": [80, 8, 8, 4], "charter": "-"},
      {"notes": [160, 16, 16, 8], "charter": "-"},
      {"notes": [240, 24, 24, 12], "charter": "譜面-100号"},
      {"notes": [320, 32, 32, 16], "charter": "某谱师"}
    ],
    "basic_info": {
      "artist": "削除",
      "genre": "maimai",
      "bpm": 165,
      "from": "maimai MiLK",
      "is_new": true
    }
  }
]`

func TestParseMusicData(t *testing.T) {
	list, err := ParseMusicData([]byte(musicDataSample))
	if err != nil {
		t.Fatalf("ParseMusicData出错：%v", err)
	}
	if len(list) != 2 {
		t.Fatalf("曲目数 = %d，期望 2", len(list))
	}
	dx := list.ByID("11")
	if dx == nil {
		t.Fatal("未解析出曲目11")
	}
	if dx.Artist != "t+pazolite" || dx.BPM != 210 || dx.Version != "maimai GreeN" {
		t.Errorf("基本信息解析错误：%+v", dx)
	}
	// DX谱面物量为[tap, hold, slide, touch, break]
	notes := dx.Charts[3].Notes
	if notes.Tap != 400 || notes.Hold != 40 || notes.Slide != 40 || notes.Touch != 20 || notes.Break != 20 {
		t.Errorf("DX谱面物量解析错误：%+v", notes)
	}
	sd := list.ByID("365")
	if sd == nil {
		t.Fatal("未解析出曲目365")
	}
	if !sd.IsNew {
		t.Error("is_new解析错误")
	}
	// SD谱面物量为[tap, hold, slide, break]
	notes = sd.Charts[2].Notes
	if notes.Tap != 240 || notes.Touch != 0 || notes.Break != 12 {
		t.Errorf("SD谱面物量解析错误：%+v", notes)
	}
	if sd.Charts[2].Charter != "譜面-100号" {
		t.Errorf("谱师解析错误：%q", sd.Charts[2].Charter)
	}
}

func TestParseMusicDataInvalid(t *testing.T) {
	if _, err := ParseMusicData([]byte("not json")); err == nil {
		t.Error("非法JSON应返回错误")
	}
}

func TestFillChartStats(t *testing.T) {
	list, err := ParseMusicData([]byte(musicDataSample))
	if err != nil {
		t.Fatalf("ParseMusicData出错：%v", err)
	}
	stats := gjson.Parse(`{
	  "charts": {
	    "11": [
	      {"cnt": 100, "fit_diff": 4.1, "avg": 99.2, "avg_dx": 1000, "std_dev": 1.5, "dist": [1, 2, 3]},
	      {"cnt": 200, "fit_diff": 7.2, "avg": 98.1, "avg_dx": 2000, "std_dev": 2.5, "dist": []}
	    ]
	  }
	}`)
	FillChartStats(list, stats)
	m := list.ByID("11")
	if len(m.Stats) != 2 {
		t.Fatalf("统计条数 = %d，期望 2", len(m.Stats))
	}
	s := m.Stats[0]
	if s.Count != 100 || s.FitDiff != 4.1 || s.AvgAch != 99.2 || s.AvgDX != 1000 || s.StdDev != 1.5 {
		t.Errorf("统计信息解析错误：%+v", s)
	}
	if len(s.Dist) != 3 || s.Dist[2] != 3 {
		t.Errorf("评级分布解析错误：%v", s.Dist)
	}
	if stats := list.ByID("365").Stats; stats != nil {
		t.Errorf("无统计信息的曲目Stats应为nil，实际 %v", stats)
	}
	if got := m.PlayCount(); got != 300 {
		t.Errorf("PlayCount = %v，期望 300", got)
	}
}
