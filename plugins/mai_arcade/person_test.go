package mai_arcade

import "testing"

func TestApplyPersonOp(t *testing.T) {
	tests := []struct {
		current int
		op      string
		num     string
		want    int
		ok      bool
	}{
		{0, "设置", "5", 5, true},
		{3, "设定", "0", 0, true},
		{3, "=", "10", 10, true},
		{3, "＝", "7", 7, true},
		{3, "加", "2", 5, true},
		{3, "增加", "1", 4, true},
		{3, "+", "+", 4, true},
		{3, "＋", "＋", 4, true},
		{3, "减", "2", 1, true},
		{3, "减少", "3", 0, true},
		{3, "-", "-", 2, true},
		{3, "降低", "1", 2, true},
		// 减到负数视为非法
		{1, "减", "2", 0, false},
		{0, "-", "-", 0, false},
		// 设置时必须是数字
		{3, "设置", "+", 0, false},
		{3, "设置", "abc", 0, false},
		{3, "加", "abc", 0, false},
		{3, "未知操作", "1", 0, false},
	}
	for _, tt := range tests {
		got, ok := applyPersonOp(tt.current, tt.op, tt.num)
		if got != tt.want || ok != tt.ok {
			t.Errorf("applyPersonOp(%d, %q, %q) = (%d, %v)，期望 (%d, %v)",
				tt.current, tt.op, tt.num, got, ok, tt.want, tt.ok)
		}
	}
}

func TestArcadeAliasHelpers(t *testing.T) {
	a := Arcade{Name: "中心店", Alias: "万达|中心"}
	if got := a.Aliases(); len(got) != 2 || got[0] != "万达" {
		t.Errorf("Aliases = %v", got)
	}
	if !a.HasAlias("中心") || a.HasAlias("不存在") {
		t.Error("HasAlias判断错误")
	}
	var empty Arcade
	if got := empty.Aliases(); len(got) != 0 {
		t.Errorf("无别名时Aliases = %v", got)
	}
}

func TestSetPerson(t *testing.T) {
	var a Arcade
	a.setPerson(5, "张三")
	if a.Person != 5 || a.By != "张三" || len(a.Time) == 0 {
		t.Errorf("setPerson后 Person=%d By=%s Time=%s", a.Person, a.By, a.Time)
	}
	a.setPerson(-3, "李四")
	if a.Person != 0 {
		t.Errorf("人数不应为负数：%d", a.Person)
	}
}
