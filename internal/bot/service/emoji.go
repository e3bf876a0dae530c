package service

import (
	"fmt"
	"strconv"
)

// Emoji labels the size of a day-over-day move.
type Emoji string

const (
	EmojiNeutral Emoji = "😐"

	EmojiSoaring  Emoji = "🍾"
	EmojiHappy    Emoji = "😃"
	EmojiThinking Emoji = "🤔"
	EmojiUp       Emoji = "📈"

	EmojiCrashing Emoji = "😱"
	EmojiSweating Emoji = "😰"
	EmojiFearful  Emoji = "😨"
	EmojiDown     Emoji = "📉"
)

type changeBucket struct {
	threshold float64
	emoji     Emoji
}

// highest magnitude first
var (
	positiveBuckets = []changeBucket{
		{25, EmojiSoaring},
		{15, EmojiHappy},
		{5, EmojiThinking},
		{0, EmojiUp},
	}
	negativeBuckets = []changeBucket{
		{-25, EmojiCrashing},
		{-15, EmojiSweating},
		{-5, EmojiFearful},
		{0, EmojiDown},
	}
)

// ClassifyChange maps a percent change to its emoji. Values that round to
// 0.00 are neutral; bucket bounds are inclusive.
func ClassifyChange(percent float64) Emoji {
	rounded, err := strconv.ParseFloat(fmt.Sprintf("%.2f", percent), 64)
	if err != nil || rounded == 0 {
		return EmojiNeutral
	}

	if percent >= 0 {
		for _, b := range positiveBuckets {
			if percent >= b.threshold {
				return b.emoji
			}
		}
	} else {
		for _, b := range negativeBuckets {
			if percent <= b.threshold {
				return b.emoji
			}
		}
	}
	return EmojiNeutral
}

// direction is 1 for rising emojis, -1 for falling ones and 0 for neutral.
func (e Emoji) direction() int {
	for _, b := range positiveBuckets {
		if b.emoji == e {
			return 1
		}
	}
	for _, b := range negativeBuckets {
		if b.emoji == e {
			return -1
		}
	}
	return 0
}
