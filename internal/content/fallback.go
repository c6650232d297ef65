package content

import (
	"math/rand"
	"time"

	"daily-bot/internal/models"
)

// Built-in content used whenever generation is disabled or fails. Both
// tables must stay non-empty: they are the reason the provider can never
// come up empty-handed.
var fallbackJokes = []string{
	"Why do programmers prefer dark mode? Because light attracts bugs! 🐛",
	"How many programmers does it take to change a light bulb? None. That's a hardware problem. 💡",
	"Why do Java developers wear glasses? Because they don't C#! 👓",
	"A SQL query walks into a bar, goes up to two tables and asks... 'Can I join you?' 🍺",
	"Why did the developer go broke? Because he used up all his cache! 💸",
	"What's a programmer's favorite hangout place? Foo Bar! 🍻",
	"Why do programmers hate nature? It has too many bugs! 🌿",
	"How do you comfort a JavaScript bug? You console it! 🐞",
	"Why don't programmers like camping? Too many bugs! 🦟",
	"What do you call a programming language that never crashes? A myth! 💫",
}

var fallbackTrivia = []string{
	"The first computer bug was an actual bug: a moth trapped in a Harvard Mark II computer in 1947!",
	"The term 'debugging' was coined by Admiral Grace Hopper when she found that moth!",
	"JavaScript was created in just 10 days by Brendan Eich in 1995.",
	"The first 1GB hard drive cost $40,000 and weighed over 500 pounds (1980).",
	"Python is named after Monty Python's Flying Circus, not the snake! 🐍",
	"The original name for Java was 'Oak', but it was changed due to trademark issues.",
	"Linux powers 96.3% of the top 1 million web servers in the world! 🐧",
	"The @ symbol was chosen for email addresses because it was the only preposition available on the keyboard.",
	"The first computer virus was created in 1986 and was called 'Brain'.",
	"The term 'cookie' in web development comes from 'magic cookie', a packet of data in Unix systems.",
}

// Fallback picks uniformly from the static tables.
type Fallback struct {
	jokes  []string
	trivia []string
	rnd    *rand.Rand
}

func NewFallback(rnd *rand.Rand) *Fallback {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Fallback{
		jokes:  fallbackJokes,
		trivia: fallbackTrivia,
		rnd:    rnd,
	}
}

func (f *Fallback) Pick(kind models.ContentKind) string {
	table := f.jokes
	if kind == models.KindTrivia {
		table = f.trivia
	}
	return table[f.rnd.Intn(len(table))]
}
