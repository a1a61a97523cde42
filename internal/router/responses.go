package router

import (
	"math/rand"
	"sync"
	"time"
)

// Canned response pools for conversational branches. One entry is picked
// at random per reply so repeated greetings don't read robotic.

var greetingPool = []string{
	"Hi there! How can I help you today?",
	"Hello! Feel free to send me mpox news or ask questions.",
	"Hey! Ready to bust some mpox myths together!",
	"Hi! Send me any news headline and I'll check it for you.",
}

var conversationalPool = []string{
	"I'm just a bot, but I'm functioning well! How can I help with mpox info today?",
	"I'm a chatbot, so I don't have feelings, but I'm ready to discuss mpox!",
	"I'm here and ready to help with any mpox questions you have!",
}

var casualPool = []string{
	"You're welcome!",
	"Gotcha!",
	"Happy to help!",
}

var offTopicPool = []string{
	"I'm specialized in mpox health information. I can help with:\n" +
		"- Mpox symptoms and prevention\n" +
		"- News verification\n" +
		"- Transmission risks\n\n" +
		"Try asking about these health topics instead!",
	"That seems outside my expertise. I focus specifically on mpox " +
		"health information. Need help with symptoms or latest news?",
	"I'm designed for mpox health information. For general knowledge, " +
		"you might want to try a different service. I can help with:\n" +
		"- Fact-checking mpox claims\n" +
		"- Understanding transmission risks\n" +
		"- Latest mpox news",
}

var jokePool = []string{
	"Why don't viruses tell jokes? They don't have a good sense of humor - they prefer a good host instead!",
	"What did one cell say to his sister cell who stepped on his foot? Mitosis!",
	"Why did the bacteria cross the microscope? To get to the other slide!",
	"Why did the hand sanitizer break up with the soap? It felt their relationship was too superficial!",
	"Why don't scientists trust atoms? Because they make up everything!",
	"What's a virus's favorite game? Hide and seek - because they're always in your cells!",
	"How do viruses communicate? Through the web!",
	"What did the soap say to the germ? You're washed up!",
}

var fallbackPool = []string{
	"Sorry, I couldn't understand that. Could you rephrase it?",
	"I'm not sure how to respond. Try sending me a news headline or question about mpox.",
	"That doesn't seem related to mpox. Want to try again?",
}

// picker serializes access to a shared random source.
type picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newPicker() *picker {
	return &picker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *picker) pick(pool []string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pool[p.rng.Intn(len(pool))]
}
