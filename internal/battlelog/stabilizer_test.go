package battlelog

import "testing"

func battleLog(lines ...string) *Log {
	return &Log{Type: TypeBattle, Lines: lines}
}

func TestStabilizerReleasesRepeatedMessageOnce(t *testing.T) {
	s := NewStabilizer()

	if out := s.Handle(battleLog("ピカチュウの こうげき！")); out != nil {
		t.Fatalf("released on first sight: %+v", out)
	}
	out := s.Handle(battleLog("ピカチュウの こうげき！"))
	if out == nil {
		t.Fatal("repeated message was not released")
	}
	if out.Lines[0] != "ピカチュウの こうげき！" {
		t.Errorf("released %q, want the raw reading", out.Lines[0])
	}

	for i := 0; i < 3; i++ {
		if out := s.Handle(battleLog("ピカチュウの こうげき！")); out != nil {
			t.Fatalf("released the same message again: %+v", out)
		}
	}
}

func TestStabilizerToleratesOcrJitter(t *testing.T) {
	s := NewStabilizer()

	s.Handle(battleLog("バタフリーは ねむってしまった"))
	// A later frame reads the same message with dakuten dropped.
	if out := s.Handle(battleLog("ハタフリーは ねむってしまった")); out == nil {
		t.Error("jittered rereading was treated as a new message")
	}
}

func TestStabilizerDifferentMessageResets(t *testing.T) {
	s := NewStabilizer()

	s.Handle(battleLog("ピカチュウの こうげき！"))
	s.Handle(battleLog("ピカチュウの こうげき！"))

	if out := s.Handle(battleLog("こうかは バツグンだ！")); out != nil {
		t.Fatalf("released a message on first sight: %+v", out)
	}
	if out := s.Handle(battleLog("こうかは バツグンだ！")); out == nil {
		t.Error("new repeated message was not released")
	}
}

func TestStabilizerNilReadingBreaksStability(t *testing.T) {
	s := NewStabilizer()

	s.Handle(battleLog("ピカチュウの こうげき！"))
	s.Handle(nil)
	if out := s.Handle(battleLog("ピカチュウの こうげき！")); out != nil {
		t.Errorf("released after a frame with no log: %+v", out)
	}
}

func TestStabilizerTypeChangeIsNotStable(t *testing.T) {
	s := NewStabilizer()

	s.Handle(battleLog("たたかう！"))
	out := s.Handle(&Log{Type: TypeGeneral, Lines: []string{"たたかう！"}})
	if out != nil {
		t.Errorf("released across log types: %+v", out)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ピカチュウ", "ﾋｶﾁｭｳ"},
		{"がぎぐ", "ｶｷｸ"},
		{"八ピナス", "ﾊﾋﾅｽ"},
		{"ｱｵｼﾞﾀ", "ｵｵｼﾀ"},
	}
	for _, c := range cases {
		if got := normalize(c.in); got != c.want {
			t.Errorf("normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
