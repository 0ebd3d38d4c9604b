package pokedex

// Mapper resolves recognized IDs to speech-ready entries.
type Mapper struct {
	mapping map[ID]*Pokemon
}

func NewMapper(records []Record) *Mapper {
	mapping := make(map[ID]*Pokemon, len(records))
	for _, r := range records {
		id := ID{DexNumber: r.DexNumber, FormIndex: r.FormIndex}
		mapping[id] = &Pokemon{
			ID:       id,
			Name:     fixName(r),
			Typesets: fixTypesets(r),
		}
	}
	return &Mapper{mapping: mapping}
}

func (m *Mapper) Get(id ID) *Pokemon {
	return m.mapping[id]
}

func fixName(r Record) string {
	if mapped, ok := nameOverrides[ID{r.DexNumber, r.FormIndex}]; ok {
		return mapped
	}

	switch r.FormName {
	case "アローラのすがた":
		return "アローラ" + r.Name
	case "ガラルのすがた":
		return "ガラル" + r.Name
	case "ヒスイのすがた":
		return "ヒスイ" + r.Name
	case "パルデアのすがた":
		return "パルデア" + r.Name
	case "けしんフォルム":
		return "けしん" + r.Name
	case "れいじゅうフォルム":
		return "れいじゅう" + r.Name
	case "オスのすがた":
		return r.Name + "オス"
	case "メスのすがた":
		return r.Name + "メス"
	}

	// Species whose form name is appended verbatim.
	switch r.DexNumber {
	case 386, 647, 710, 711, 741:
		return r.Name + r.FormName
	}

	// Species whose form name replaces the name outright.
	switch r.DexNumber {
	case 479, 646, 720:
		if name, found := trimSuffix(r.FormName, "のすがた"); found {
			return name
		}
		if r.FormName != "" {
			return r.FormName
		}
	}

	return r.Name
}

func trimSuffix(s, suffix string) (string, bool) {
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)], true
	}
	return s, false
}

func fixTypesets(r Record) [][]Type {
	if sets, ok := typeOverrides[ID{r.DexNumber, r.FormIndex}]; ok {
		return sets
	}
	if r.Type2 != "" {
		return [][]Type{{Type(r.Type1), Type(r.Type2)}}
	}
	return [][]Type{{Type(r.Type1)}}
}

// Names the raw pokedex stores in a shape unsuitable for reading aloud.
var nameOverrides = map[ID]string{
	{128, 2}:  "パルデアケンタロスほのお",
	{128, 3}:  "パルデアケンタロスみず",
	{233, 0}:  "ポリゴンツー",
	{413, 0}:  "ミノマダムくさき",
	{413, 1}:  "ミノマダムすなち",
	{413, 2}:  "ミノマダムゴミ",
	{483, 1}:  "オリジンディアルガ",
	{484, 1}:  "オリジンパルキア",
	{487, 0}:  "ギラティナアナザーフォルム",
	{487, 1}:  "ギラティナオリジンフォルム",
	{492, 0}:  "シェイミ",
	{492, 1}:  "シェイミスカイフォルム",
	{550, 0}:  "バスラオあかすじ",
	{550, 1}:  "バスラオあおすじ",
	{550, 2}:  "バスラオしろすじ",
	{555, 1}:  "ヒヒダルマダルマモード",
	{555, 3}:  "ガラルヒヒダルマダルマモード",
	{718, 0}:  "50パーセントジガルデ",
	{718, 1}:  "パーフェクトジガルデ",
	{718, 2}:  "10パーセントジガルデ",
	{745, 0}:  "ルガルガンまひる",
	{745, 1}:  "ルガルガンまよなか",
	{745, 2}:  "ルガルガンたそがれ",
	{800, 1}:  "日食ネクロズマ",
	{800, 2}:  "月食ネクロズマ",
	{898, 1}:  "白バドレックス",
	{898, 2}:  "黒バドレックス",
	{901, 1}:  "アカツキガチグマ",
	{931, 0}:  "イキリンコグリーン",
	{931, 1}:  "イキリンコブルー",
	{931, 2}:  "イキリンコイエロー",
	{931, 3}:  "イキリンコホワイト",
	{1017, 0}: "くさオーガポン",
	{1017, 1}: "みずオーガポン",
	{1017, 2}: "ほのおオーガポン",
	{1017, 3}: "いわオーガポン",
}

// Species whose artwork does not reveal which typeset is in play.
var typeOverrides = map[ID][][]Type{
	{892, 0}: {{TypeFighting, TypeWater}, {TypeFighting, TypeDark}},
	{892, 1}: {{TypeFighting, TypeWater}, {TypeFighting, TypeDark}},
	{888, 0}: {{TypeFairy, TypeSteel}, {TypeFairy}},
	{889, 0}: {{TypeFighting, TypeSteel}, {TypeFighting}},
}
