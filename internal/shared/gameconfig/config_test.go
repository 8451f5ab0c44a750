package gameconfig

import (
	"slices"
	"strings"
	"testing"
)

func TestUnlockedVehicles_按等级累计(t *testing.T) {
	c := Default()
	cases := []struct {
		level int
		want  []string
	}{
		{1, []string{"scout"}},
		{2, []string{"scout", "hauler"}},
		{3, []string{"scout", "hauler", "basic"}},
		{4, []string{"scout", "hauler", "basic", "transport", "heavyTank"}},
		{9, []string{"scout", "hauler", "basic", "transport", "heavyTank"}},
	}
	for _, tc := range cases {
		if got := c.UnlockedVehicles(tc.level); !slices.Equal(got, tc.want) {
			t.Fatalf("level=%d got=%v want=%v", tc.level, got, tc.want)
		}
	}
	if c.IsUnlocked(1, "hauler") || !c.IsUnlocked(2, "hauler") {
		t.Fatalf("hauler 应在 2 级解锁")
	}
	if got := c.UnlockLevel("heavyTank"); got != 4 {
		t.Fatalf("UnlockLevel(heavyTank)=%d", got)
	}
}

func TestUnloadTime_图鉴覆盖全局(t *testing.T) {
	c := Default()
	basic, _ := c.VehicleType("basic")
	transport, _ := c.VehicleType("transport")
	if got := c.UnloadTime(basic); got != c.UnloadTimeMS {
		t.Fatalf("basic 应使用全局卸货时长, got=%d", got)
	}
	if got := c.UnloadTime(transport); got != 0 {
		t.Fatalf("transport 应即时卸货, got=%d", got)
	}
}

func TestLevelStats_与升级花费(t *testing.T) {
	c := Default()
	if c.LevelHP(1) != c.BaseHP || c.LevelHP(3) != c.BaseHP+200 {
		t.Fatalf("LevelHP 不符合 BASE_HP + (level-1)*100")
	}
	if c.LevelDamage(2) != c.BaseDamage+5 {
		t.Fatalf("LevelDamage 不符合 BASE_DAMAGE + (level-1)*5")
	}
	if l, s := c.UpgradeCost(2); l != 400 || s != 300 {
		t.Fatalf("UpgradeCost(2)=(%v,%v)", l, s)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("默认配置应合法: %v", err)
	}
	c := Default()
	c.TickMS = 0
	c.BaseLevelVehicles[5] = []string{"mech"}
	err := c.Validate()
	if err == nil {
		t.Fatalf("期望校验失败")
	}
	if !strings.Contains(err.Error(), "tick_ms") || !strings.Contains(err.Error(), `"mech"`) {
		t.Fatalf("错误信息不完整: %v", err)
	}
}
