package lexicon

// Dotted abbreviations. Lower-case entries match in any case; capitalised
// ones collide with ordinary words at a sentence end ("my gen.", "on fri.")
// and only match capitalised text. Dotted acronyms (U.S.A., e.g) are
// recognized by rule and need no entry here.
var defaultAbbreviations = []string{
	"mr.", "mrs.", "ms.", "dr.", "sr.", "jr.",
	"etc.", "vs.", "approx.", "dept.", "inc.", "ltd.", "corp.", "avg.",

	"Rep.", "Sen.", "St.", "Prof.", "Gen.", "Gov.", "Lt.", "Col.", "Capt.", "Sgt.", "Rev.", "Hon.",
	"Vol.", "Ft.",
	"Jan.", "Feb.", "Apr.", "Aug.", "Sept.", "Oct.", "Nov.",
	"Tue.", "Tues.", "Thu.", "Thurs.", "Fri.",
}

// Contractions and apostrophe forms that must stay one token.
var defaultContractions = []string{
	"ain't", "aren't", "can't", "couldn't", "didn't", "doesn't", "don't",
	"hadn't", "hasn't", "haven't", "isn't", "mustn't", "needn't", "shan't",
	"shouldn't", "wasn't", "weren't", "won't", "wouldn't",
	"i'm", "i've", "i'll", "i'd", "you're", "you've", "you'll", "you'd",
	"he's", "he'll", "he'd", "she's", "she'll", "she'd", "it's", "it'll",
	"we're", "we've", "we'll", "we'd", "they're", "they've", "they'll", "they'd",
	"that's", "there's", "here's", "what's", "who's", "where's", "how's", "let's",
	"y'all", "ma'am", "o'clock", "ne'er", "e'er",
	"'em", "'til", "'cause", "'tis", "'twas", "'bout", "'n'",
}

// Literal faces not produced by the eyes/nose/mouth rules.
var defaultEmoticons = []string{
	"xD", "XD", "xP", "XP", "xd",
	"^^", "^.^", "^-^", "^o^",
	`\o/`, "o/", `\m/`,
	"<3", "</3",
	":-*", ":*", ";*",
	"¯\\_(ツ)_/¯",
	"(╯°□°）╯︵ ┻━┻",
}

// Top-level domains accepted for bare-domain URLs (example.com, bbc.co.uk).
var defaultTLDs = []string{
	// common gTLDs
	"com", "org", "edu", "gov", "net", "mil", "aero", "asia", "biz", "cat", "coop",
	"info", "int", "jobs", "mobi", "museum", "name", "pro", "tel", "travel", "xxx",
	"app", "dev", "xyz", "online", "site", "blog", "news", "shop",

	// ccTLDs
	"ac", "ad", "ae", "af", "ag", "ai", "al", "am", "an", "ao", "aq", "ar", "as", "at", "au", "aw",
	"ax", "az", "ba", "bb", "bd", "be", "bf", "bg", "bh", "bi", "bj", "bm", "bn", "bo", "br", "bs",
	"bt", "bv", "bw", "by", "bz", "ca", "cc", "cd", "cf", "cg", "ch", "ci", "ck", "cl", "cm", "cn",
	"co", "cr", "cs", "cu", "cv", "cx", "cy", "cz", "dd", "de", "dj", "dk", "dm", "do", "dz", "ec",
	"ee", "eg", "eh", "er", "es", "et", "eu", "fi", "fj", "fk", "fm", "fo", "fr", "ga", "gb", "gd",
	"ge", "gf", "gg", "gh", "gi", "gl", "gm", "gn", "gp", "gq", "gr", "gs", "gt", "gu", "gw", "gy",
	"hk", "hm", "hn", "hr", "ht", "hu", "id", "ie", "il", "im", "in", "io", "iq", "ir", "is", "it",
	"je", "jm", "jo", "jp", "ke", "kg", "kh", "ki", "km", "kn", "kp", "kr", "kw", "ky", "kz", "la",
	"lb", "lc", "li", "lk", "lr", "ls", "lt", "lu", "lv", "ly", "ma", "mc", "md", "me", "mg", "mh",
	"mk", "ml", "mm", "mn", "mo", "mp", "mq", "mr", "ms", "mt", "mu", "mv", "mw", "mx", "my", "mz",
	"na", "nc", "ne", "nf", "ng", "ni", "nl", "no", "np", "nr", "nu", "nz", "om", "pa", "pe", "pf",
	"pg", "ph", "pk", "pl", "pm", "pn", "pr", "ps", "pt", "pw", "py", "qa", "re", "ro", "rs", "ru",
	"rw", "sa", "sb", "sc", "sd", "se", "sg", "sh", "si", "sj", "sk", "sl", "sm", "sn", "so", "sr",
	"ss", "st", "su", "sv", "sy", "sz", "tc", "td", "tf", "tg", "th", "tj", "tk", "tl", "tm", "tn",
	"to", "tp", "tr", "tt", "tv", "tw", "tz", "ua", "ug", "uk", "us", "uy", "uz", "va", "vc", "ve",
	"vg", "vi", "vn", "vu", "wf", "ws", "ye", "yt", "za", "zm", "zw",
}
