package assessment

import (
	"encoding/json"
	"testing"
)

func TestAnswer_JSONWireForm(t *testing.T) {
	row := []Answer{Yes, No, Unanswered}
	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[true,false,null]" {
		t.Errorf("wire form = %s, want [true,false,null]", b)
	}

	var back []Answer
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := range row {
		if back[i] != row[i] {
			t.Errorf("round-trip[%d] = %v, want %v", i, back[i], row[i])
		}
	}
}

func TestAnswer_RejectsOtherValues(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte(`"yes"`), &a); err == nil {
		t.Error("accepted a string answer")
	}
	if err := json.Unmarshal([]byte(`1`), &a); err == nil {
		t.Error("accepted a numeric answer")
	}
}

func TestForArea_LazyInit(t *testing.T) {
	sheet := NewAnswerSheet()
	if _, ok := sheet["X"]; ok {
		t.Fatal("sheet should start empty")
	}

	row := sheet.ForArea("X", 3)
	if len(row) != 3 {
		t.Fatalf("row length = %d, want 3", len(row))
	}
	for i, a := range row {
		if a != Unanswered {
			t.Errorf("row[%d] = %v, want Unanswered", i, a)
		}
	}
	if _, ok := sheet["X"]; !ok {
		t.Error("ForArea did not store the new row")
	}
}

func TestForArea_ResizePreservesAnswers(t *testing.T) {
	sheet := AnswerSheet{"X": {Yes, No}}
	row := sheet.ForArea("X", 4)
	if len(row) != 4 {
		t.Fatalf("row length = %d, want 4", len(row))
	}
	if row[0] != Yes || row[1] != No {
		t.Error("resize lost existing answers")
	}
	if row[2] != Unanswered || row[3] != Unanswered {
		t.Error("new positions should be Unanswered")
	}
}

func TestSet_OutOfRangeIgnored(t *testing.T) {
	sheet := NewAnswerSheet()
	sheet.ForArea("X", 2)
	sheet.Set("X", 5, Yes)
	sheet.Set("X", -1, Yes)
	sheet.Set("nope", 0, Yes)

	if sheet.YesCount("X") != 0 {
		t.Error("out-of-range Set mutated the row")
	}
	if _, ok := sheet["nope"]; ok {
		t.Error("Set created a row for an unknown area")
	}
}

func TestCounts(t *testing.T) {
	sheet := AnswerSheet{"X": {Yes, No, Unanswered, Yes}}
	if got := sheet.YesCount("X"); got != 2 {
		t.Errorf("YesCount = %d, want 2", got)
	}
	if got := sheet.AnsweredCount("X"); got != 3 {
		t.Errorf("AnsweredCount = %d, want 3", got)
	}
}

func TestClone_Independent(t *testing.T) {
	sheet := AnswerSheet{"X": {Yes, No}}
	cp := sheet.Clone()
	cp.Set("X", 1, Yes)
	if sheet["X"][1] != No {
		t.Error("Clone shares backing storage with the original")
	}
}
