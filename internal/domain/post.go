package domain

import "time"

// Metrics holds the public interaction counters attached to a post.
type Metrics struct {
	Likes    int
	Retweets int
	Replies  int
	Quotes   int
}

// Post is a core entity describing a single post fetched from the platform.
// Posts live for one run only and are never persisted.
type Post struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Text           string
	CreatedAt      time.Time
	Metrics        Metrics
}

// Persona identifies one of the fixed reply voices.
type Persona string

const (
	PersonaMysteriousInsider Persona = "mysterious_insider"
	PersonaLowKeyExpert      Persona = "low_key_expert"
	PersonaCasualFriend      Persona = "casual_friend"
)

// Personas lists every persona in round-robin order.
var Personas = []Persona{
	PersonaMysteriousInsider,
	PersonaLowKeyExpert,
	PersonaCasualFriend,
}

// Category labels the detected content topic of a post.
type Category string

const (
	CategoryMarketVolatility Category = "market_volatility"
	CategoryAirdrops         Category = "airdrops"
	CategoryStaking          Category = "staking"
	CategoryNFT              Category = "nft"
	CategoryDeFi             Category = "defi"
	CategoryRegulation       Category = "regulation"
	CategoryGeneral          Category = "general"
)

// ReplyRecord is the persisted evidence that a post has been answered.
// The collection of all records forms the reply history.
type ReplyRecord struct {
	PostID    string
	ReplyID   string
	PostText  string
	ReplyText string
	RepliedAt time.Time
}
