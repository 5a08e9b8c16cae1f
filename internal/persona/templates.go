package persona

import "CryptoReplyBot/internal/domain"

// templates maps category x persona to the fixed reply pool. Every entry must
// stay under the platform character limit; the generator still enforces the
// cap as a backstop.
var templates = map[domain.Category]map[domain.Persona][]string{
	domain.CategoryMarketVolatility: {
		domain.PersonaMysteriousInsider: {
			"Market moves like this separate signal from noise. Smart money positioned weeks ago.",
			"Not every dip deserves attention. This one might. The patterns are familiar to those who've seen cycles.",
			"Price action is just surface noise. The real story is in the quiet accumulation happening now.",
		},
		domain.PersonaLowKeyExpert: {
			"These market swings feel dramatic until you've seen a few cycles. Focus on fundamentals not emotions.",
			"Market psychology at work. Fear and greed playing out exactly as expected. Stay rational.",
			"Short-term volatility, long-term opportunity. The patient ones always win these games.",
		},
		domain.PersonaCasualFriend: {
			"Wild ride right? Remember when everyone panicked last time and missed the recovery? History rhymes.",
			"Market's just doing its thing. Deep breaths and zoom out on the chart. This too shall pass.",
			"Crypto being crypto! Perfect time to remember why you got in this space to begin with.",
		},
	},
	domain.CategoryAirdrops: {
		domain.PersonaMysteriousInsider: {
			"The airdrop game changed months ago. The valuable ones aren't announced loudly.",
			"Real value rarely comes from what everyone's chasing. The signal is elsewhere.",
			"Interesting timing on this distribution. Watch what happens next week.",
		},
		domain.PersonaLowKeyExpert: {
			"Airdrops are marketing, not gifts. Always ask what you're giving up in return.",
			"The best airdrops come to those building value, not those hunting for free money.",
			"Quality projects don't need to give tokens away. Worth considering why this one does.",
		},
		domain.PersonaCasualFriend: {
			"Free tokens are fun but don't forget to check the project fundamentals too!",
			"Airdrops are like crypto lottery tickets. Enjoy the game but don't build your strategy on them.",
			"Got my popcorn ready for this airdrop season! Just remember most tokens go to zero.",
		},
	},
	domain.CategoryStaking: {
		domain.PersonaMysteriousInsider: {
			"Everyone stares at the APY. The ones who matter read the unlock schedule first.",
			"Staking rewards tell you who the protocol wants to keep quiet. Worth sitting with that.",
			"The yield is the headline. The validator set is the story nobody reads.",
		},
		domain.PersonaLowKeyExpert: {
			"High APY means high emissions. Ask where the yield actually comes from before locking anything.",
			"Staking is lending the network your conviction. Make sure the network deserves it.",
			"Sustainable yield is boring yield. The flashy numbers rarely survive a full cycle.",
		},
		domain.PersonaCasualFriend: {
			"Passive income sounds great until you read the unbonding period! Always check the fine print.",
			"Staking rewards are nice but remember the token price moves too. Both legs matter.",
			"Love a good staking setup! Just never lock more than you can forget about for a while.",
		},
	},
	domain.CategoryNFT: {
		domain.PersonaMysteriousInsider: {
			"Floor price is theater. The wallets that matter moved before the mint was public.",
			"Collections come and go. The infrastructure behind them is where the quiet money sits.",
			"Watch who's accumulating while everyone argues about art. That's the real chart.",
		},
		domain.PersonaLowKeyExpert: {
			"NFT value is community value. No community, no floor. It's that simple.",
			"Most mints are exit liquidity. The rare ones build something that outlasts the hype.",
			"Art is subjective, liquidity isn't. Know which one you're actually buying.",
		},
		domain.PersonaCasualFriend: {
			"The art is half the fun! Just mint what you'd be happy holding at zero.",
			"NFT season again? Love the creativity even when the floor charts get scary.",
			"Some of my favorite people in crypto came from NFT communities. It's not just jpegs!",
		},
	},
	domain.CategoryDeFi: {
		domain.PersonaMysteriousInsider: {
			"TVL is a billboard. The contract addresses tell the story the dashboard won't.",
			"Every farm has a feeder. Figure out which side of that you're on before depositing.",
			"The protocols that survive aren't the loud ones. They're the ones still shipping in the quiet.",
		},
		domain.PersonaLowKeyExpert: {
			"DeFi yield is payment for risk you haven't priced yet. Audit reports age fast.",
			"Composability is powerful until one lego breaks. Know your dependencies.",
			"If you can't explain where the yield comes from, you are the yield.",
		},
		domain.PersonaCasualFriend: {
			"DeFi is the wild west and honestly that's half the appeal. Just size positions sensibly!",
			"Liquidity pools are fun until impermanent loss shows up uninvited. Learn it before you earn it.",
			"Love watching DeFi evolve! Banks could never ship this fast.",
		},
	},
	domain.CategoryRegulation: {
		domain.PersonaMysteriousInsider: {
			"Regulation headlines move price. Regulation details move industries. Read the details.",
			"The firms that lobbied for this clarity positioned for it years ago. Nothing here is sudden.",
			"Enforcement actions are lagging indicators. The compliant builders saw this coming.",
		},
		domain.PersonaLowKeyExpert: {
			"Clear rules are bullish long term even when the headline feels bearish. Zoom out.",
			"Regulation filters out the tourists. The builders who remain are the ones worth watching.",
			"Compliance is a moat now. The projects that embraced it early are quietly winning.",
		},
		domain.PersonaCasualFriend: {
			"Regulation talk always spooks the timeline. The space has survived every headline so far!",
			"Rules of the road were always coming. Better paved than lawless, honestly.",
			"Every cycle has its regulation scare. Somehow we keep building anyway.",
		},
	},
	domain.CategoryGeneral: {
		domain.PersonaMysteriousInsider: {
			"The narrative shifts but the fundamentals remain. Those who know are quietly building.",
			"Interesting perspective. Though the real alpha is rarely discussed publicly.",
			"Some see volatility. Others see opportunity. The difference is experience.",
		},
		domain.PersonaLowKeyExpert: {
			"Worth considering both sides. The market rewards those who think independently.",
			"The crypto space evolves fast. Adapting your strategy is key to staying ahead.",
			"Focus on signal not noise. The best opportunities aren't the ones everyone's talking about.",
		},
		domain.PersonaCasualFriend: {
			"Love the energy in crypto right now! So many possibilities if you know where to look.",
			"Crypto keeps it interesting! Never a dull moment when you're building the future.",
			"This space moves so fast! Exciting to see where we'll be this time next year.",
		},
	},
}

// TemplatesFor returns the reply pool for a category and persona. Unknown
// personas fall back to the mysterious insider, unknown categories to the
// general pool, so the generator always has something to say.
func TemplatesFor(category domain.Category, p domain.Persona) []string {
	byPersona, ok := templates[category]
	if !ok {
		byPersona = templates[domain.CategoryGeneral]
	}
	pool, ok := byPersona[p]
	if !ok {
		pool = byPersona[domain.PersonaMysteriousInsider]
	}
	return pool
}
