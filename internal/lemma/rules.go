package lemma

type detachment struct {
	suffix  string
	replace string
}

// Suffix detachment rules, tried in order.
var detachments = map[POS][]detachment{
	Noun: {
		{"s", ""},
		{"ses", "s"},
		{"ves", "f"},
		{"xes", "x"},
		{"zes", "z"},
		{"ches", "ch"},
		{"shes", "sh"},
		{"men", "man"},
		{"ies", "y"},
	},
	Verb: {
		{"s", ""},
		{"ies", "y"},
		{"es", "e"},
		{"es", ""},
		{"ed", "e"},
		{"ed", ""},
		{"ing", "e"},
		{"ing", ""},
	},
	Adjective: {
		{"er", ""},
		{"est", ""},
		{"er", "e"},
		{"est", "e"},
		{"ier", "y"},
		{"iest", "y"},
	},
}

// Irregular forms the suffix rules cannot reach.
var exceptions = map[POS]map[string]string{
	Noun: {
		"children": "child",
		"men":      "man",
		"women":    "woman",
		"people":   "person",
		"feet":     "foot",
		"teeth":    "tooth",
		"geese":    "goose",
		"mice":     "mouse",
		"leaves":   "leaf",
		"wives":    "wife",
		"knives":   "knife",
		"lives":    "life",
		"wolves":   "wolf",
		"halves":   "half",
		"selves":   "self",
		"oxen":     "ox",
		"data":     "datum",
		"criteria": "criterion",
	},
	Verb: {
		"am":      "be",
		"are":     "be",
		"is":      "be",
		"was":     "be",
		"were":    "be",
		"been":    "be",
		"being":   "be",
		"has":     "have",
		"had":     "have",
		"does":    "do",
		"did":     "do",
		"done":    "do",
		"went":    "go",
		"gone":    "go",
		"said":    "say",
		"made":    "make",
		"came":    "come",
		"took":    "take",
		"taken":   "take",
		"saw":     "see",
		"seen":    "see",
		"got":     "get",
		"gotten":  "get",
		"knew":    "know",
		"known":   "know",
		"thought": "think",
		"told":    "tell",
		"gave":    "give",
		"given":   "give",
		"found":   "find",
		"left":    "leave",
		"felt":    "feel",
		"kept":    "keep",
		"began":   "begin",
		"begun":   "begin",
		"ran":     "run",
		"brought": "bring",
		"bought":  "buy",
		"wrote":   "write",
		"written": "write",
		"ate":     "eat",
		"eaten":   "eat",
		"spoke":   "speak",
		"spoken":  "speak",
	},
	Adjective: {
		"better":  "good",
		"best":    "good",
		"worse":   "bad",
		"worst":   "bad",
		"further": "far",
		"farther": "far",
		"more":    "much",
		"most":    "much",
		"less":    "little",
		"least":   "little",
	},
	Adverb: {
		"better": "well",
		"best":   "well",
		"worse":  "badly",
		"worst":  "badly",
	},
}
