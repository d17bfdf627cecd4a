package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Bold", "Quiet", "Loose", "Tight", "Patient", "Fearless", "Crafty", "Steady", "Wild",
	"Bluffing", "Folding", "Raising", "Stacking", "Grinding", "Slick", "Sharp", "Cool", "Stone-Cold",
	"Suited", "Offsuit", "Double", "Triple", "Rivered", "Flopped",
}

var nouns = []string{
	"Ace", "Deuce", "Trey", "Jack", "Queen", "King", "Joker", "Shark", "Fish", "Whale",
	"Grinder", "Dealer", "Button", "Blind", "Kicker", "Boat", "Wheel", "Broadway", "Nut",
	"Gutshot", "Cooler", "Maniac", "Rock", "Station",
}

// GetRandomName returns a random name by combining an adjective with a poker noun
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], nouns[rand.Intn(len(nouns))])
}
