package pokerentry

const (
	// General
	UnsetValue = -1

	// Tournament rules, fixed for every tournament
	TournamentDuration  int64 = 21 * 24 * 60 * 60 // 賽事時間總長 (Seconds)
	MaxEntriesPerPlayer       = 50                 // 每個地址報名次數上限

	// Rake
	MaxRakePercentage = 100

	// Seed phrase the default setting commits to
	DefaultSeedPhrase = "Poker Tournament"
)
