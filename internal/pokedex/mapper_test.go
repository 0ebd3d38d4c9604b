package pokedex

import "testing"

func TestMapper_PlainName(t *testing.T) {
	m := NewMapper([]Record{
		{DexNumber: 25, FormIndex: 0, Name: "ピカチュウ", Type1: "electric"},
	})
	p := m.Get(ID{25, 0})
	if p == nil {
		t.Fatal("expected entry for 25-0")
	}
	if p.Name != "ピカチュウ" {
		t.Errorf("expected ピカチュウ, got %s", p.Name)
	}
	if len(p.Typesets) != 1 || len(p.Typesets[0]) != 1 || p.Typesets[0][0] != TypeElectric {
		t.Errorf("expected single electric typeset, got %v", p.Typesets)
	}
}

func TestMapper_RegionalFormPrefix(t *testing.T) {
	m := NewMapper([]Record{
		{DexNumber: 26, FormIndex: 1, Name: "ライチュウ", FormName: "アローラのすがた", Type1: "electric", Type2: "psychic"},
	})
	p := m.Get(ID{26, 1})
	if p.Name != "アローラライチュウ" {
		t.Errorf("expected アローラライチュウ, got %s", p.Name)
	}
	if len(p.Typesets[0]) != 2 {
		t.Errorf("expected dual typeset, got %v", p.Typesets)
	}
}

func TestMapper_NameOverride(t *testing.T) {
	m := NewMapper([]Record{
		{DexNumber: 233, FormIndex: 0, Name: "ポリゴン2", Type1: "normal"},
	})
	if got := m.Get(ID{233, 0}).Name; got != "ポリゴンツー" {
		t.Errorf("expected ポリゴンツー, got %s", got)
	}
}

func TestMapper_FormNameReplacesName(t *testing.T) {
	m := NewMapper([]Record{
		{DexNumber: 479, FormIndex: 1, Name: "ロトム", FormName: "ヒートロトムのすがた", Type1: "electric", Type2: "fire"},
	})
	if got := m.Get(ID{479, 1}).Name; got != "ヒートロトム" {
		t.Errorf("expected ヒートロトム, got %s", got)
	}
}

func TestMapper_TypeOverrideHasAlternatives(t *testing.T) {
	m := NewMapper([]Record{
		{DexNumber: 892, FormIndex: 0, Name: "ウーラオス", Type1: "fighting", Type2: "water"},
	})
	sets := m.Get(ID{892, 0}).Typesets
	if len(sets) != 2 {
		t.Fatalf("artwork-ambiguous species should list both typesets, got %v", sets)
	}
}

func TestMapper_MissingID(t *testing.T) {
	m := NewMapper(nil)
	if m.Get(ID{1, 0}) != nil {
		t.Error("missing id should return nil")
	}
}
