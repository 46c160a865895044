package analysis

// Trigger categories.
const (
	TriggerStress        = "stress"
	TriggerWork          = "work"
	TriggerRelationships = "relationships"
	TriggerHealth        = "health"
	TriggerFinancial     = "financial"
	TriggerSocial        = "social"
	TriggerPersonal      = "personal"

	TriggerAchievement = "achievement"
	TriggerConnection  = "connection"
	TriggerNature      = "nature"
	TriggerCreativity  = "creativity"
	TriggerGratitude   = "gratitude"

	TriggerEmotionalState = "emotional_state"
	TriggerCausalThinking = "causal_thinking"
)

// category pairs a trigger tag with the substrings that raise it. Words are
// matched as substrings of the lowercased text, so short words that hide
// inside common longer ones ("ill", "pay", "sun", "art") are left out.
type category struct {
	name  string
	words []string
}

var concernCategories = []category{
	{TriggerStress, []string{
		"stress", "anxious", "anxiety", "overwhelm", "pressure", "deadline",
		"worried", "worry", "panic", "nervous", "tense", "burnout", "burned out",
	}},
	{TriggerWork, []string{
		"work", "job", "boss", "office", "meeting", "career", "colleague",
		"coworker", "manager", "project", "workload", "client",
	}},
	{TriggerRelationships, []string{
		"relationship", "partner", "boyfriend", "girlfriend", "husband", "wife",
		"marriage", "dating", "breakup", "broke up", "divorce", "family",
		"parents", "mother", "father", "argument",
	}},
	{TriggerHealth, []string{
		"sick", "illness", "doctor", "hospital", "painful", "headache", "tired",
		"exhausted", "insomnia", "medication", "symptom", "injury", "fever",
		"therapy",
	}},
	{TriggerFinancial, []string{
		"money", "bills", "debt", "salary", "budget", "expenses", "loan",
		"mortgage", "afford", "financial", "savings",
	}},
	{TriggerSocial, []string{
		"lonely", "loneliness", "isolated", "party", "friends", "social",
		"gathering", "people", "crowd", "left out",
	}},
	{TriggerPersonal, []string{
		"myself", "goals", "identity", "purpose", "growth", "habit",
		"motivation", "confidence", "self-esteem",
	}},
}

var positiveCategories = []category{
	{TriggerAchievement, []string{
		"accomplish", "achieved", "achievement", "finished", "completed",
		"success", "succeeded", "proud", "promotion", "milestone",
	}},
	{TriggerConnection, []string{
		"together", "connected", "hugged", "hugs", "reunion", "bonding",
		"quality time", "spent time with", "talked with",
	}},
	{TriggerNature, []string{
		"nature", "outdoors", "hike", "hiking", "forest", "the park", "beach",
		"mountain", "garden", "sunset", "sunrise", "ocean",
	}},
	{TriggerCreativity, []string{
		"creative", "creativity", "painting", "drawing", "writing", "music",
		"poem", "poetry", "sketch", "photography", "crafting",
	}},
	{TriggerGratitude, []string{
		"grateful", "gratitude", "thankful", "thanks", "thank you", "blessed",
		"appreciate",
	}},
}

var (
	emotionalStatePhrases = []string{"i feel", "i am", "i'm", "i’m"}
	causalPhrases         = []string{"because", "since", "due to"}
)

// Smart-feature word lists. Matched by exact token equality against the
// normalized text.
var (
	smartPositiveWords = map[string]bool{
		"good": true, "great": true, "excellent": true, "amazing": true,
		"wonderful": true, "fantastic": true, "love": true, "happy": true,
		"joy": true, "smile": true, "beautiful": true, "perfect": true,
		"awesome": true, "brilliant": true,
	}
	smartNegativeWords = map[string]bool{
		"bad": true, "terrible": true, "awful": true, "horrible": true,
		"hate": true, "sad": true, "angry": true, "frustrated": true,
		"disappointed": true, "worst": true, "disgusting": true, "annoying": true,
	}
)

// sentimentLexicon holds word polarities for the baseline sentence tagger.
var sentimentLexicon = map[string]float64{
	"excellent": 0.9, "amazing": 0.85, "wonderful": 0.85, "fantastic": 0.85,
	"perfect": 0.95, "brilliant": 0.85, "superb": 0.85, "outstanding": 0.9,
	"good": 0.6, "great": 0.75, "nice": 0.5, "love": 0.8, "loved": 0.8,
	"happy": 0.7, "happier": 0.7, "glad": 0.6, "joy": 0.8, "joyful": 0.8,
	"beautiful": 0.75, "enjoy": 0.65, "enjoyed": 0.65, "fun": 0.65,
	"awesome": 0.8, "best": 0.85, "better": 0.5, "calm": 0.5, "relaxed": 0.55,
	"peaceful": 0.6, "excited": 0.7, "exciting": 0.65, "proud": 0.7,
	"grateful": 0.75, "thankful": 0.75, "hopeful": 0.6, "smile": 0.6,
	"laughed": 0.6, "content": 0.4, "okay": 0.2, "fine": 0.3, "productive": 0.5,
	"energized": 0.55, "confident": 0.55, "rested": 0.4,

	"terrible": -0.9, "awful": -0.85, "horrible": -0.85, "disgusting": -0.9,
	"dreadful": -0.85, "bad": -0.6, "hate": -0.8, "sad": -0.7, "unhappy": -0.7,
	"angry": -0.75, "upset": -0.6, "frustrated": -0.65, "frustrating": -0.65,
	"disappointed": -0.65, "disappointing": -0.7, "worst": -0.85,
	"worse": -0.5, "annoying": -0.65, "annoyed": -0.6, "boring": -0.5,
	"lonely": -0.65, "anxious": -0.6, "worried": -0.55, "scared": -0.6,
	"afraid": -0.6, "stressed": -0.6, "overwhelmed": -0.6, "tired": -0.35,
	"exhausted": -0.55, "hurt": -0.6, "cry": -0.6, "cried": -0.6,
	"miserable": -0.85, "depressed": -0.8, "fail": -0.7, "failed": -0.7,
	"failure": -0.75, "wrong": -0.5, "sick": -0.5, "pain": -0.6,
}

// Modifier multipliers applied to the next sentiment word within two tokens.
var (
	intensifiers = map[string]bool{
		"very": true, "extremely": true, "absolutely": true, "totally": true,
		"really": true, "so": true, "incredibly": true, "super": true,
		"utterly": true, "completely": true, "truly": true,
	}
	diminishers = map[string]bool{
		"slightly": true, "somewhat": true, "rather": true, "fairly": true,
		"barely": true, "hardly": true, "little": true, "kinda": true,
		"sorta": true, "bit": true,
	}
	negations = map[string]bool{
		"not": true, "no": true, "never": true, "neither": true, "nor": true,
		"cannot": true, "without": true, "nobody": true, "nothing": true,
		"none": true, "can't": true, "won't": true, "don't": true,
		"doesn't": true, "didn't": true, "isn't": true, "aren't": true,
		"wasn't": true, "weren't": true, "haven't": true, "hasn't": true,
		"couldn't": true, "wouldn't": true, "shouldn't": true,
		"cant": true, "wont": true, "dont": true, "doesnt": true, "didnt": true,
		"isnt": true, "wasnt": true,
	}
)

const (
	intensifierFactor = 1.5
	diminisherFactor  = 0.5
	negationFactor    = -0.5
	negationWindow    = 3
	modifierWindow    = 2
)
