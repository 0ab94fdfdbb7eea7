package entity

import (
	"slices"
	"strings"
)

type Character struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CharacterPool is the fixed set of characters players pick from, in announcement order.
var CharacterPool = []Character{
	{Name: "fungus beetle", Color: "green"},
	{Name: "star-nosed mole", Color: "orange"},
	{Name: "fried egg jellyfish", Color: "blue"},
	{Name: "furry potato", Color: "purple"},
}

// FindCharacter matches a spoken name against the pool, ignoring case and a leading "the".
func FindCharacter(name string) (Character, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "the ")

	for _, character := range CharacterPool {
		if character.Name == name {
			return character, true
		}
	}

	return Character{}, false
}

func CharacterColor(name string) string {
	if character, ok := FindCharacter(name); ok {
		return character.Color
	}

	return ""
}

// RemainingCharacters returns the pool minus chosen, preserving pool order.
func RemainingCharacters(chosen []string) []Character {
	remaining := make([]Character, 0, len(CharacterPool))
	for _, character := range CharacterPool {
		if !slices.Contains(chosen, character.Name) {
			remaining = append(remaining, character)
		}
	}

	return remaining
}

func CharacterNames(characters []Character) []string {
	names := make([]string, len(characters))
	for i, character := range characters {
		names[i] = character.Name
	}

	return names
}
