package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if got := b.Languages(); len(got) != 2 || got[0] != DefaultLanguage {
		t.Errorf("Languages() = %v, want default language first", got)
	}
	for _, lang := range []string{"en", "zh"} {
		if !b.Has(lang) {
			t.Errorf("Has(%q) = false, want true", lang)
		}
	}
}

func TestLoadEmbeddedWithDefault(t *testing.T) {
	b, err := LoadEmbeddedWithDefault("zh")
	if err != nil {
		t.Fatalf("LoadEmbeddedWithDefault(zh) error = %v", err)
	}
	if b.Default() != "zh" || b.Languages()[0] != "zh" {
		t.Errorf("Default() = %q, Languages() = %v, want zh first", b.Default(), b.Languages())
	}

	if _, err := LoadEmbeddedWithDefault("fr"); err == nil {
		t.Error("LoadEmbeddedWithDefault(fr) error = nil, want missing locale error")
	}
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	b := MustLoadEmbedded()
	en := b.messages["en"]
	for _, lang := range b.Languages() {
		for key := range en {
			if _, ok := b.messages[lang][key]; !ok {
				t.Errorf("locale %s is missing key %q", lang, key)
			}
		}
	}
}

func TestT(t *testing.T) {
	b := MustLoadEmbedded()

	tests := []struct {
		name   string
		lang   string
		key    string
		params Params
		want   string
	}{
		{"english", "en", "performance.good", nil, "Good"},
		{"chinese", "zh", "performance.good", nil, "良好"},
		{"region tag", "zh-CN", "performance.good", nil, "良好"},
		{"unsupported language", "fr", "performance.good", nil, "Good"},
		{"empty language", "", "performance.good", nil, "Good"},
		{"missing key", "zh", "no.such.key", nil, "no.such.key"},
		{"params", "en", "guidance.day_title", Params{"day": 3}, "Day 3 Training Guidance:"},
		{"params chinese", "zh", "guidance.day_title", Params{"day": 3}, "第3天训练指导："},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.T(tt.lang, tt.key, tt.params); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	b := MustLoadEmbedded()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"en", "en", true},
		{"zh", "zh", true},
		{"zh-CN", "zh", true},
		{"zh-Hans", "zh", true},
		{"en-GB", "en", true},
		{"fr-FR,zh;q=0.8", "zh", true},
		{"de", "en", false},
		{"", "en", false},
		{"!!", "en", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := b.Match(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Match(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		msg    string
		params Params
		want   string
	}{
		{"no params", "hello {name}", nil, "hello {name}"},
		{"one param", "hello {name}", Params{"name": "Ann"}, "hello Ann"},
		{"repeated", "{a}{a}", Params{"a": 1}, "11"},
		{"unknown placeholder kept", "{a} {b}", Params{"a": "x"}, "x {b}"},
		{"float", "{p}%", Params{"p": 42.5}, "42.5%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.msg, tt.params); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFromFSRejectsMismatchedLocale(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en.yaml"), "locale: fr\nmessages:\n  a: b\n")

	if _, err := LoadFromFS(os.DirFS(dir), "en"); err == nil {
		t.Fatal("expected error for mismatched locale")
	}
}

func TestLoadFromFSRequiresDefaultLocale(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/zh.yaml"), "locale: zh\nmessages:\n  a: b\n")

	if _, err := LoadFromFS(os.DirFS(dir), "en"); err == nil {
		t.Fatal("expected error for missing default locale")
	}
}

func TestNilBundle(t *testing.T) {
	var b *Bundle
	if got := b.T("en", "performance.good", nil); got != "performance.good" {
		t.Errorf("T() on nil bundle = %q, want key", got)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}
