package notification

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/eleven-am/battle-narrator/internal/cursor"
	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/move"
	"github.com/eleven-am/battle-narrator/internal/pokedex"
	"github.com/eleven-am/battle-narrator/internal/scene"
	"github.com/eleven-am/battle-narrator/internal/team"
	"github.com/eleven-am/battle-narrator/internal/tera"
)

// AllyHpFormat selects how the ally's HP is spoken.
type AllyHpFormat string

const (
	AllyHpFormatNumerator AllyHpFormat = "numerator"
	AllyHpFormatRatio     AllyHpFormat = "ratio"
	AllyHpFormatBoth      AllyHpFormat = "both"
)

// AllyHpFormatter renders an HP fraction as speech.
type AllyHpFormatter struct {
	format AllyHpFormat
}

func NewAllyHpFormatter(format AllyHpFormat) *AllyHpFormatter {
	if format == "" {
		format = AllyHpFormatBoth
	}
	return &AllyHpFormatter{format: format}
}

func (f *AllyHpFormatter) Format(value *hp.VisibleHp) string {
	if value == nil || value.Max == 0 {
		return ""
	}
	if value.Current == 0 {
		return "ゼロ"
	}

	if f.format == AllyHpFormatNumerator {
		return strconv.Itoa(value.Current)
	}

	percentage := value.Current * 100 / value.Max
	if f.format == AllyHpFormatRatio {
		return fmt.Sprintf("%d%%", percentage)
	}
	return fmt.Sprintf("%d、%d%%", value.Current, percentage)
}

// Messenger converts notifications to Japanese speech text.
type Messenger struct {
	allyHp *AllyHpFormatter
	mapper *pokedex.Mapper
	logger *slog.Logger
}

func NewMessenger(allyHp *AllyHpFormatter, mapper *pokedex.Mapper, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{allyHp: allyHp, mapper: mapper, logger: logger.With("component", "messenger")}
}

func (m *Messenger) Text(n Notification) string {
	switch n := n.(type) {
	case SceneChange:
		switch n.Change {
		case scene.ChangeSelectionStart:
			return "選出開始"
		case scene.ChangeSelectionComplete:
			return "選出終了"
		case scene.ChangeCommandStart:
			return "指示開始"
		}

	case Team:
		label := teamDirectionTexts[n.Direction]
		if len(n.Team) == 0 {
			return label + "が認識されていません"
		}
		return label + "。" + m.teamText(n.Team, n.WithTypes)

	case Selection:
		if len(n.Items) == 0 {
			return "選出されていません"
		}
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = m.selectionItemText(item)
		}
		return "選出。" + strings.Join(parts, "。")

	case AllyHp:
		text := m.allyHp.Format(n.Value)
		if text == "" {
			return "味方エイチピーが読み込めていません"
		}
		return "味方エイチピー" + text

	case OpponentHp:
		if n.Ratio == nil {
			return "相手エイチピーが読み込めていません"
		}
		return fmt.Sprintf("相手エイチピー%d%%", int(math.Floor(*n.Ratio*100)))

	case Moves:
		if len(n.Items) == 0 {
			return "技が読み込めませんでした"
		}
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = moveText(item)
		}
		return "技。" + strings.Join(parts, "。")

	case Log:
		return strings.Join(n.Lines, "、")

	case Screenshot:
		if n.Succeeded {
			return "スクリーンショットを保存しました"
		}
		return "スクリーンショットを保存できませんでした"

	case PokemonCursor:
		return m.pokemonCursorText(n)

	case SelectionCompleteButton:
		return "完了ボタン"

	case CommandCursor:
		if n.Cursor == nil {
			return "指示カーソルを認識できませんでした"
		}
		return fmt.Sprintf("指示%d番目", n.Cursor.Index+1)

	case MoveCursor:
		if n.Cursor == nil {
			return "技カーソルを認識できませんでした"
		}
		label := fmt.Sprintf("技%d番目", n.Cursor.Index+1)
		if n.Cursor.Content == nil {
			return label
		}
		return label + "、" + moveText(n.Cursor.Content)

	case UnknownCursor:
		return "カーソルを認識できない画面です"

	case TeraType:
		message := "テラスタイプ、" + teraTypeTexts[n.Primary]
		if len(n.Possible) > 0 {
			names := make([]string, len(n.Possible))
			for i, t := range n.Possible {
				names[i] = teraTypeTexts[t]
			}
			message += "。もしかすると、" + strings.Join(names, "、")
		}
		return message
	}

	m.logger.Warn("unsupported notification", "notification", fmt.Sprintf("%T", n))
	return "想定されていない発話です"
}

func (m *Messenger) teamText(roster pokedex.Team, withTypes bool) string {
	parts := make([]string, len(roster))
	for i, id := range roster {
		parts[i] = "認識不可"
		if id == nil {
			continue
		}
		pokemon := m.mapper.Get(*id)
		if pokemon == nil {
			continue
		}
		if !withTypes {
			parts[i] = pokemon.Name
			continue
		}
		typesets := make([]string, len(pokemon.Typesets))
		for j, typeset := range pokemon.Typesets {
			var b strings.Builder
			for _, t := range typeset {
				b.WriteString(typeTexts[t])
			}
			typesets[j] = b.String()
		}
		parts[i] = pokemon.Name + "、" + strings.Join(typesets, "または")
	}
	return strings.Join(parts, "。")
}

func (m *Messenger) selectionItemText(item *team.Item) string {
	if item == nil {
		return "認識不可"
	}
	if item.ID != nil {
		if pokemon := m.mapper.Get(*item.ID); pokemon != nil {
			return pokemon.Name
		}
	}
	return fmt.Sprintf("%d匹目のポケモン", item.IndexInTeam+1)
}

func (m *Messenger) pokemonCursorText(n PokemonCursor) string {
	if n.Cursor == nil {
		return "ポケモンカーソルを認識できませんでした"
	}

	label := fmt.Sprintf("%d匹目", n.Cursor.Index+1)
	if n.Cursor.Content.ID != nil {
		if pokemon := m.mapper.Get(*n.Cursor.Content.ID); pokemon != nil {
			label += "、" + pokemon.Name
		}
	}
	if n.Scene == cursor.PokemonSceneCommandPokemon {
		if text := m.allyHp.Format(n.Cursor.Content.HP); text != "" {
			label += "、エイチピー" + text
		}
	}

	if submenu := n.Cursor.Content.Submenu; submenu != nil {
		menuLabel := fmt.Sprintf("メニュー%d番目", submenu.Index+1)
		if submenu.Content != "" {
			menuLabel += "、" + submenu.Content
		}
		return label + "。" + menuLabel
	}
	return label
}

func moveText(item *move.Move) string {
	if item == nil {
		return "認識不可"
	}
	parts := []string{item.Name}
	if item.Effectiveness != nil {
		parts = append(parts, effectivenessTexts[*item.Effectiveness])
	}
	if item.PP != nil {
		parts = append(parts, strconv.Itoa(item.PP.Current))
	}
	return strings.Join(parts, "、")
}

var teamDirectionTexts = map[team.Direction]string{
	team.DirectionAlly:     "味方チーム",
	team.DirectionOpponent: "相手チーム",
}

var typeTexts = map[pokedex.Type]string{
	pokedex.TypeNormal:   "ノーマル",
	pokedex.TypeFire:     "ほのお",
	pokedex.TypeWater:    "みず",
	pokedex.TypeElectric: "でんき",
	pokedex.TypeGrass:    "くさ",
	pokedex.TypeIce:      "こおり",
	pokedex.TypeFighting: "かくとう",
	pokedex.TypePoison:   "どく",
	pokedex.TypeGround:   "じめん",
	pokedex.TypeFlying:   "ひこう",
	pokedex.TypePsychic:  "エスパー",
	pokedex.TypeBug:      "むし",
	pokedex.TypeRock:     "いわ",
	pokedex.TypeGhost:    "ゴースト",
	pokedex.TypeDragon:   "ドラゴン",
	pokedex.TypeDark:     "あく",
	pokedex.TypeSteel:    "はがね",
	pokedex.TypeFairy:    "フェアリー",
	pokedex.TypeUnknown:  "不明",
}

var effectivenessTexts = map[move.Effectiveness]string{
	move.SuperEffective:   "抜群",
	move.Effective:        "普通",
	move.NotVeryEffective: "いまひとつ",
	move.NoEffect:         "無効",
}

var teraTypeTexts = map[tera.Type]string{
	tera.TypeNormal:   "ノーマル",
	tera.TypeFire:     "ほのお",
	tera.TypeWater:    "みず",
	tera.TypeElectric: "でんき",
	tera.TypeGrass:    "くさ",
	tera.TypeIce:      "こおり",
	tera.TypeFighting: "かくとう",
	tera.TypePoison:   "どく",
	tera.TypeGround:   "じめん",
	tera.TypeFlying:   "ひこう",
	tera.TypePsychic:  "エスパー",
	tera.TypeBug:      "むし",
	tera.TypeRock:     "いわ",
	tera.TypeGhost:    "ゴースト",
	tera.TypeDragon:   "ドラゴン",
	tera.TypeDark:     "あく",
	tera.TypeSteel:    "はがね",
	tera.TypeFairy:    "フェアリー",
	tera.TypeStella:   "ステラ",
}
