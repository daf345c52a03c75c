package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.gpl")
	gpl := "GIMP Palette\nName: mono\nColumns: 2\n# comment\n  0   0   0\tblack\n255 255 255\twhite\n"
	if err := os.WriteFile(path, []byte(gpl), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadGPL(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "mono" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if got := p.Lookup(0.5); got[0] < 126 || got[0] > 129 {
		t.Errorf("Lookup(0.5) = %v, want mid grey", got)
	}
	if p.Lookup(-1) != p.Colors[0] || p.Lookup(2) != p.Colors[1] {
		t.Error("Lookup does not clamp")
	}
	if p.Index(5) != p.Colors[1] {
		t.Error("Index does not clamp")
	}
}

func TestLoadGPLEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGPL(path); err == nil {
		t.Error("LoadGPL accepted a palette without colours")
	}
}

func TestDefault(t *testing.T) {
	p, err := LoadOrDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Colors) != 41 {
		t.Errorf("default has %d colours", len(p.Colors))
	}
	if p.Colors[0] != (RGB{0x0d, 0x08, 0x87}) || p.Colors[40] != (RGB{0xf0, 0xf9, 0x21}) {
		t.Errorf("gradient ends = %v, %v", p.Colors[0], p.Colors[40])
	}

	th := New(p)
	if th.BG() == th.Success() {
		t.Error("background and success roles share a colour")
	}
	if got := RGBColor([3]uint8{255, 0, 16}); string(got) != "#ff0010" {
		t.Errorf("RGBColor = %s", got)
	}
}
