package scoring

import (
	"testing"

	"CryptoReplyBot/internal/domain"
)

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	m := domain.Metrics{Likes: 10, Retweets: 5, Replies: 2, Quotes: 1}
	first := Score(m)
	for i := 0; i < 100; i++ {
		if got := Score(m); got != first {
			t.Fatalf("score changed between calls: %f vs %f", got, first)
		}
	}
}

func TestScoreMonotone(t *testing.T) {
	t.Parallel()

	base := domain.Metrics{Likes: 3, Retweets: 4, Replies: 5, Quotes: 6}
	baseScore := Score(base)

	bumps := map[string]domain.Metrics{
		"likes":    {Likes: base.Likes + 1, Retweets: base.Retweets, Replies: base.Replies, Quotes: base.Quotes},
		"retweets": {Likes: base.Likes, Retweets: base.Retweets + 1, Replies: base.Replies, Quotes: base.Quotes},
		"replies":  {Likes: base.Likes, Retweets: base.Retweets, Replies: base.Replies + 1, Quotes: base.Quotes},
		"quotes":   {Likes: base.Likes, Retweets: base.Retweets, Replies: base.Replies, Quotes: base.Quotes + 1},
	}

	for metric, bumped := range bumps {
		if Score(bumped) <= baseScore {
			t.Fatalf("increasing %s did not increase the score", metric)
		}
	}
}

func TestScoreResharesOutweighLikes(t *testing.T) {
	t.Parallel()

	likeOnly := Score(domain.Metrics{Likes: 1})
	if Score(domain.Metrics{Retweets: 1}) <= likeOnly {
		t.Fatal("a retweet should outweigh a like")
	}
	if Score(domain.Metrics{Quotes: 1}) <= likeOnly {
		t.Fatal("a quote should outweigh a like")
	}
}

func TestFilterByScorePreservesOrder(t *testing.T) {
	t.Parallel()

	posts := []domain.Post{
		{ID: "a", Metrics: domain.Metrics{Likes: 120}}, // 120
		{ID: "b", Metrics: domain.Metrics{Likes: 40}},  // 40
		{ID: "c", Metrics: domain.Metrics{Likes: 200}}, // 200
	}

	kept := FilterByScore(posts, 50)
	if len(kept) != 2 {
		t.Fatalf("expected 2 posts above threshold, got %d", len(kept))
	}
	if kept[0].ID != "a" || kept[1].ID != "c" {
		t.Fatalf("order not preserved: got %s then %s", kept[0].ID, kept[1].ID)
	}
}
