package scene

// ImageScene is the scene label recognized from a single frame. A single
// frame regularly misclassifies against a live encoder, so ImageScene values
// are raw observations, not state.
type ImageScene int

const (
	ImageUnknown ImageScene = iota
	ImageSelection
	ImageSelectionSummary
	ImageSelectionMovesAndStats
	ImageSelectionMemories
	ImageSelectionComplete
	ImageCommand
	ImageCommandMove
	ImageCommandPokemon
	ImageCommandPokemonSummary
	ImageCommandPokemonMovesAndStats
	ImageCommandPokemonMemories
	ImageCommandCanceling
	ImageCommandTeam
	ImageCommandSituation
	ImageFieldMenu
	ImageLobby
)

// Scene is the stabilized scene the player perceives through the stream.
type Scene int

const (
	Unknown Scene = iota
	Selection
	SelectionSummary
	SelectionMovesAndStats
	SelectionMemories
	SelectionComplete
	Command
	CommandMove
	CommandPokemon
	CommandPokemonSummary
	CommandPokemonMovesAndStats
	CommandPokemonMemories
	CommandCanceling
	CommandTeam
	CommandSituation
	FieldMenu
	Lobby
)

// Group is a coarse partition of scenes.
type Group int

const (
	GroupNone Group = iota
	GroupSelection
	GroupSelectionComplete
	GroupCommand
)

// Change is a transition event between scene groups.
type Change int

const (
	ChangeSelectionStart Change = iota + 1
	ChangeSelectionComplete
	ChangeCommandStart
)

var imageSceneToScene = map[ImageScene]Scene{
	ImageUnknown:                     Unknown,
	ImageSelection:                   Selection,
	ImageSelectionSummary:            SelectionSummary,
	ImageSelectionMovesAndStats:      SelectionMovesAndStats,
	ImageSelectionMemories:           SelectionMemories,
	ImageSelectionComplete:           SelectionComplete,
	ImageCommand:                     Command,
	ImageCommandMove:                 CommandMove,
	ImageCommandPokemon:              CommandPokemon,
	ImageCommandPokemonSummary:       CommandPokemonSummary,
	ImageCommandPokemonMovesAndStats: CommandPokemonMovesAndStats,
	ImageCommandPokemonMemories:      CommandPokemonMemories,
	ImageCommandCanceling:            CommandCanceling,
	ImageCommandTeam:                 CommandTeam,
	ImageCommandSituation:            CommandSituation,
	ImageFieldMenu:                   FieldMenu,
	ImageLobby:                       Lobby,
}

var sceneToGroup = map[Scene]Group{
	Selection:                   GroupSelection,
	SelectionSummary:            GroupSelection,
	SelectionMovesAndStats:      GroupSelection,
	SelectionMemories:           GroupSelection,
	SelectionComplete:           GroupSelectionComplete,
	Command:                     GroupCommand,
	CommandMove:                 GroupCommand,
	CommandPokemon:              GroupCommand,
	CommandPokemonSummary:       GroupCommand,
	CommandPokemonMovesAndStats: GroupCommand,
	CommandPokemonMemories:      GroupCommand,
	CommandCanceling:            GroupCommand,
	CommandTeam:                 GroupCommand,
	CommandSituation:            GroupCommand,
}

func (s Scene) Group() Group {
	return sceneToGroup[s]
}

func (s Scene) String() string {
	if name, ok := sceneNames[s]; ok {
		return name
	}
	return "unknown"
}

var sceneNames = map[Scene]string{
	Unknown:                     "unknown",
	Selection:                   "selection",
	SelectionSummary:            "selection_summary",
	SelectionMovesAndStats:      "selection_moves_and_stats",
	SelectionMemories:           "selection_memories",
	SelectionComplete:           "selection_complete",
	Command:                     "command",
	CommandMove:                 "command_move",
	CommandPokemon:              "command_pokemon",
	CommandPokemonSummary:       "command_pokemon_summary",
	CommandPokemonMovesAndStats: "command_pokemon_moves_and_stats",
	CommandPokemonMemories:      "command_pokemon_memories",
	CommandCanceling:            "command_canceling",
	CommandTeam:                 "command_team",
	CommandSituation:            "command_situation",
	FieldMenu:                   "field_menu",
	Lobby:                       "lobby",
}

func (c Change) String() string {
	switch c {
	case ChangeSelectionStart:
		return "selection_start"
	case ChangeSelectionComplete:
		return "selection_complete"
	case ChangeCommandStart:
		return "command_start"
	}
	return "unknown"
}
