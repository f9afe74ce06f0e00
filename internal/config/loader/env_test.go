package loader

import "testing"

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoaderFrom(EnvPrefix, []string{
		"TERMPAINT_LOG_LEVEL=debug",
		"TERMPAINT_MODE=static",
		"TERMPAINT_RENDERER_LAYOUT_MAX_HEIGHT=120",
		"TERMPAINT_RENDERER_CLEAR_ON_FULL=false",
		"TERMPAINT_RENDERER_FULL_REPAINT_THRESHOLD=0.25",
		"HOME=/root",
	})

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"renderer.mode", "static"},
		{"renderer.layoutMaxHeight", int64(120)},
		{"renderer.clearOnFull", false},
		{"renderer.fullRepaintThreshold", 0.25},
	}
	for _, tt := range tests {
		got, ok := GetByPath(cfg, tt.path)
		if !ok {
			t.Errorf("%s missing", tt.path)
			continue
		}
		if got != tt.want {
			t.Errorf("%s = %v (%T), want %v (%T)", tt.path, got, got, tt.want, tt.want)
		}
	}

	if _, ok := cfg["home"]; ok {
		t.Error("unprefixed variables should be ignored")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoaderFrom(EnvPrefix, []string{"TERMPAINT_REGIONS=out.json"})
	l.AddMapping("TERMPAINT_REGIONS", "scene.regionsFile")

	cfg, _ := l.Load()
	if v, _ := GetByPath(cfg, "scene.regionsFile"); v != "out.json" {
		t.Errorf("scene.regionsFile = %v, want out.json", v)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)
	tests := []struct {
		env  string
		want string
	}{
		{"TERMPAINT_SCENE_PATH", "scene.path"},
		{"TERMPAINT_SCENE_DEBOUNCE_MS", "scene.debounceMs"},
		{"TERMPAINT_RENDERER_ALT_SCREEN", "renderer.altScreen"},
		{"TERMPAINT_VERBOSE", "verbose"},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"42", int64(42)},
		{"1", int64(1)},
		{"true", true},
		{"off", false},
		{"0.5", 0.5},
		{"v1.2.3", "v1.2.3"},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
