package plan

import (
	"testing"

	"github.com/mydehq/romuless/internal/lang"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		keep  []lang.Code
		langs []lang.Code
		want  Action
	}{
		{"english kept by default keep-set", []lang.Code{lang.EN}, []lang.Code{lang.EN}, Keep},
		{"japanese moved under en keep-set", []lang.Code{lang.EN}, []lang.Code{lang.JP}, Move},
		{"multi-tag kept on any overlap", []lang.Code{lang.IT}, []lang.Code{lang.EN, lang.IT}, Keep},
		{"english moved under it keep-set", []lang.Code{lang.IT}, []lang.Code{lang.EN}, Move},
		{"unknown always kept", []lang.Code{lang.IT}, []lang.Code{lang.Unknown}, Keep},
		{"europe moved under en keep-set", []lang.Code{lang.EN}, []lang.Code{lang.EU}, Move},
		{"multiple keeps", []lang.Code{lang.JP, lang.DE}, []lang.Code{lang.DE}, Keep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Planner{Keep: lang.NewSet(tt.keep...)}
			if got := p.Sort(lang.NewSet(tt.langs...)); got != tt.want {
				t.Errorf("Sort(%v) with keep %v = %v; want %v", tt.langs, tt.keep, got, tt.want)
			}
		})
	}
}

func TestRemerge(t *testing.T) {
	tests := []struct {
		name  string
		keep  []lang.Code
		all   bool
		langs []lang.Code
		want  Action
	}{
		{"restore matching language", []lang.Code{lang.JP}, false, []lang.Code{lang.JP}, Restore},
		{"leave non-matching language", []lang.Code{lang.JP}, false, []lang.Code{lang.FR}, Leave},
		{"restore-all ignores keep-set", nil, true, []lang.Code{lang.FR}, Restore},
		{"restore-all includes unknown", nil, true, []lang.Code{lang.Unknown}, Restore},
		{"unknown restores with english", []lang.Code{lang.EN}, false, []lang.Code{lang.Unknown}, Restore},
		{"unknown stays without english", []lang.Code{lang.JP}, false, []lang.Code{lang.Unknown}, Leave},
		{"overlap restores", []lang.Code{lang.DE}, false, []lang.Code{lang.DE, lang.FR}, Restore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Planner{Keep: lang.NewSet(tt.keep...), RestoreAll: tt.all}
			if got := p.Remerge(lang.NewSet(tt.langs...)); got != tt.want {
				t.Errorf("Remerge(%v) = %v; want %v", tt.langs, got, tt.want)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	pairs := map[Action]string{Keep: "KEEP", Move: "MOVE", Restore: "REMERGE", Leave: "SKIP"}
	for a, want := range pairs {
		if a.String() != want {
			t.Errorf("%d.String() = %q; want %q", a, a.String(), want)
		}
	}
}
