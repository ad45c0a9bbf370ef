package bendprog

// Profile defines a post-processor configuration for a press brake controller.
type Profile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	Units       string `json:"units"`       // "mm"

	// Startup codes
	StartCode []string `json:"start_code"` // Commands at start of file

	// Block words
	BlockPrefix    string `json:"block_prefix"`    // Bend number word (e.g., "B")
	PositionWord   string `json:"position_word"`   // Backgauge position word (e.g., "X")
	AngleWord      string `json:"angle_word"`      // Bend angle word (e.g., "A")
	DirectionWord  string `json:"direction_word"`  // Fold direction word (e.g., "D")
	UpDirection    string `json:"up_direction"`    // Value written for upward folds
	DownDirection  string `json:"down_direction"`  // Value written for downward folds
	ModuleComments bool   `json:"module_comments"` // Comment line before each module's bends

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file, [Bends] is replaced by the bend count

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")" for Fanuc)

	// Number formatting
	DecimalPlaces int `json:"decimal_places"` // Number of decimal places for positions and angles
}

// Profiles are the built-in post-processors.
var Profiles = []Profile{
	{
		Name:           "Fanuc",
		Description:    "Fanuc-style block program with parenthesised comments",
		Units:          "mm",
		StartCode:      []string{"%", "O1000", "G21", "G90"},
		BlockPrefix:    "N",
		PositionWord:   "X",
		AngleWord:      "A",
		DirectionWord:  "D",
		UpDirection:    "UP",
		DownDirection:  "DOWN",
		ModuleComments: false,
		EndCode:        []string{"M30", "%"},
		CommentPrefix:  "(",
		CommentSuffix:  ")",
		DecimalPlaces:  3,
	},
	{
		Name:           "Generic",
		Description:    "Generic bend list, one block per bend",
		Units:          "mm",
		StartCode:      []string{"UNITS MM", "ABS"},
		BlockPrefix:    "B",
		PositionWord:   "X",
		AngleWord:      "A",
		DirectionWord:  "D",
		UpDirection:    "UP",
		DownDirection:  "DOWN",
		ModuleComments: true,
		EndCode:        []string{"COUNT [Bends]", "END"},
		CommentPrefix:  ";",
		CommentSuffix:  "",
		DecimalPlaces:  2,
	},
}

// GetProfile returns a profile by name, or the Generic profile if not found.
func GetProfile(name string) Profile {
	for _, p := range Profiles {
		if p.Name == name {
			return p
		}
	}
	return Profiles[len(Profiles)-1] // Return Generic (last one)
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range Profiles {
		names = append(names, p.Name)
	}
	return names
}
