// Package quotes holds the fixed list of flavor replies the bot falls back to
// when a message does not parse as an expense.
package quotes

import "math/rand"

var list = []string{
	"Oh, it was terrible. They recycled the air on board and it really did a number on my asthma. I-I-e-I asked them to turn up the oxygen and they wouldn't.",
	"I-I've tallied up all the times you've been naughty and deducted the times you've been nice.",
	"A-a-aactually it looks like this year you're gonna owe Santa three hundred and six presents.",
	"Hey, I'm just your naughty-and-nice accountant! Don't blame me for the numbers!",
	"If you cured cancer... and AIDS next week, you would still owe two presents. ",
	"I'm baaack!",
	"Oh Jesus, that flight was terrible. They served a chicken dish with hot sauce and it gave me gas.",
	"Sometimes I sweat from holding the bat for so long and then the heat steams up my glasses.",
	"Don't throw the ball too fast, because I might get startled and I have asthma.",
	"Is it cold out here? I think I need a jacket.",
	"I can't, I can't keep running like this! I have corns in my feet!",
	"Oh Jesus, we're gonna win! I I never won a sport before; this is so exciting.",
}

// Random returns one quote chosen uniformly at random. No state is carried
// between calls.
func Random() string {
	return list[rand.Intn(len(list))]
}

// All returns the full quote list.
func All() []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
