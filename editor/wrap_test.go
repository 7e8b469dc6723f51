package editor

import "testing"

func segCols(segs []wrappedSegment) [][3]int {
	out := make([][3]int, 0, len(segs))
	for _, s := range segs {
		out = append(out, [3]int{s.StartCol, s.EndCol, s.Cells})
	}
	return out
}

func TestWrapSegments(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  [][3]int
	}{
		{name: "fits", text: "hello", width: 10, want: [][3]int{{0, 5, 5}}},
		{name: "no width", text: "hello world", width: 0, want: [][3]int{{0, 11, 11}}},
		{name: "empty", text: "", width: 4, want: [][3]int{{0, 0, 0}}},
		{name: "word break", text: "hello world", width: 6, want: [][3]int{{0, 6, 6}, {6, 11, 5}}},
		{name: "long word falls back to clusters", text: "abcdefghij", width: 4, want: [][3]int{{0, 4, 4}, {4, 8, 4}, {8, 10, 2}}},
		{name: "several words", text: "I has a apple.", width: 8, want: [][3]int{{0, 8, 8}, {8, 14, 6}}},
		{name: "wide clusters", text: "界界界", width: 5, want: [][3]int{{0, 2, 4}, {2, 3, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segCols(wrapSegments(BuildVisualLine(tt.text, 4), tt.width))
			if len(got) != len(tt.want) {
				t.Fatalf("segments: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("segment %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapSegments_TabStraddlesBreak(t *testing.T) {
	segs := wrapSegments(BuildVisualLine("ab\tc", 4), 3)
	for i, s := range segs {
		if s.Cells > 3 {
			t.Fatalf("segment %d exceeds width: %+v", i, s)
		}
	}
	last := segs[len(segs)-1]
	if last.EndCol != 4 {
		t.Fatalf("last segment end: got %d, want 4", last.EndCol)
	}
}
