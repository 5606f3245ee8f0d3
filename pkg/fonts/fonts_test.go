package fonts

import "testing"

func TestWidth(t *testing.T) {
	if Width("", 11, Regular) != 0 {
		t.Error("empty string should have zero width")
	}

	short := Width("db", 11, Regular)
	long := Width("database replica", 11, Regular)
	if short <= 0 || long <= short {
		t.Errorf("widths not monotonic: %v, %v", short, long)
	}

	if Width("reads", 22, Regular) <= Width("reads", 11, Regular) {
		t.Error("larger size should be wider")
	}
	if Width("Storage", 20, Bold) < Width("Storage", 20, Regular) {
		t.Error("bold should not be narrower than regular")
	}
}

func TestCeilWidthIsWholePixels(t *testing.T) {
	w := CeilWidth("reads", 11, Regular)
	if w != float64(int(w)) {
		t.Errorf("CeilWidth = %v, want a whole number", w)
	}
	if w < Width("reads", 11, Regular) {
		t.Error("CeilWidth should not shrink")
	}
}
