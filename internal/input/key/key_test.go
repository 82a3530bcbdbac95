package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyEnter, "Enter"},
		{KeyUp, "ArrowUp"},
		{KeyRune, "Rune"},
		{Key(200), "Key(200)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey mismatch")
	}
	if KeyRune.IsSpecial() || !KeyTab.IsSpecial() {
		t.Error("IsSpecial mismatch")
	}
}

func TestPlatformCommandModifier(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"mac", ModMeta},
		{"darwin", ModMeta},
		{"windows", ModCtrl},
		{"linux", ModCtrl},
	}
	for _, tt := range tests {
		p, ok := ParsePlatform(tt.name)
		if !ok {
			t.Fatalf("ParsePlatform(%q) failed", tt.name)
		}
		if got := p.CommandModifier(); got != tt.want {
			t.Errorf("%s: CommandModifier() = %s, want %s", tt.name, got, tt.want)
		}
	}
	if _, ok := ParsePlatform("amiga"); ok {
		t.Error("unknown platform should not parse")
	}
}

func TestEventCommand(t *testing.T) {
	tests := []struct {
		name string
		mods Modifier
		p    Platform
		want bool
	}{
		{"ctrl on linux", ModCtrl, PlatformLinux, true},
		{"meta on linux", ModMeta, PlatformLinux, false},
		{"meta on mac", ModMeta, PlatformMac, true},
		{"ctrl on mac", ModCtrl, PlatformMac, false},
		{"ctrl shift on windows", ModCtrl | ModShift, PlatformWindows, true},
		{"none", ModNone, PlatformMac, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRuneEvent('b', tt.mods, tt.p).Command(); got != tt.want {
				t.Errorf("Command() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec     string
		platform Platform
		key      Key
		r        rune
		mods     Modifier
		str      string
	}{
		{"a", PlatformLinux, KeyRune, 'a', ModNone, "a"},
		{"B", PlatformLinux, KeyRune, 'B', ModShift, "B"},
		{"Ctrl+S", PlatformLinux, KeyRune, 's', ModCtrl, "Ctrl+s"},
		{"Cmd+B", PlatformMac, KeyRune, 'b', ModMeta, "Meta+b"},
		{"cmd+b", PlatformLinux, KeyRune, 'b', ModCtrl, "Ctrl+b"},
		{"Mod+Shift+z", PlatformWindows, KeyRune, 'z', ModCtrl | ModShift, "Ctrl+Shift+z"},
		{"Enter", PlatformLinux, KeyEnter, 0, ModNone, "Enter"},
		{"alt+up", PlatformLinux, KeyUp, 0, ModAlt, "Alt+ArrowUp"},
		{"Space", PlatformLinux, KeyRune, ' ', ModNone, "Space"},
		{"Ctrl++", PlatformLinux, KeyRune, '+', ModCtrl, "Ctrl++"},
		{"+", PlatformLinux, KeyRune, '+', ModNone, "+"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			e, err := Parse(tt.spec, tt.platform)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if e.Key != tt.key || e.Rune != tt.r || e.Modifiers != tt.mods {
				t.Errorf("Parse(%q) = %v %q %s", tt.spec, e.Key, e.Rune, e.Modifiers)
			}
			if e.Platform != tt.platform {
				t.Errorf("platform = %q", e.Platform)
			}
			if got := e.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "Hyper+b", "Ctrl+", "Ctrl+nope"} {
		if _, err := Parse(spec, PlatformLinux); err == nil {
			t.Errorf("Parse(%q) should fail", spec)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("Hyper+b", PlatformLinux)
}
