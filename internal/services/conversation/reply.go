package conversation

import (
	"math/rand"
	"time"
)

// cannedReplies is the fixed response set of the simulated assistant.
var cannedReplies = [...]string{
	"That's an interesting perspective! Could you tell me more about that?",
	"I understand what you're saying. Let me think about this for a moment.",
	"That's a great question! Based on what you've shared, I think...",
	"I appreciate you sharing that with me. Here's my thoughts on the matter:",
	"You've raised a really good point. From my understanding...",
	"That's fascinating! I'd love to explore this topic further with you.",
	"I can see why you'd think that. Let me offer a different perspective:",
	"Thank you for that insight. It reminds me of something similar...",
	"That's a complex topic! Let me break it down for you:",
	"I find that really intriguing. What made you think about that?",
}

// ReplySimulator substitutes for a real conversational backend. It is
// stateless: each call picks uniformly at random from the canned set and
// ignores the user's text entirely.
type ReplySimulator struct {
	rng *rand.Rand
}

// NewReplySimulator returns a simulator seeded from the clock.
func NewReplySimulator() *ReplySimulator {
	return &ReplySimulator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededReplySimulator returns a simulator with a fixed seed for tests.
func NewSeededReplySimulator(seed int64) *ReplySimulator {
	return &ReplySimulator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces the simulated reply for a user message.
func (g *ReplySimulator) Generate(userText string) string {
	return cannedReplies[g.rng.Intn(len(cannedReplies))]
}

// Replies exposes the template set, e.g. for membership assertions.
func (g *ReplySimulator) Replies() []string {
	return cannedReplies[:]
}

// delay picks a reply delay uniform in [min, max).
func (g *ReplySimulator) delay(min, max time.Duration) time.Duration {
	return min + time.Duration(g.rng.Int63n(int64(max-min)))
}
