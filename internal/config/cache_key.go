package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// GameStateKey returns the cache key for a game's full session state blob
func (r *CacheKeyStruct) GameStateKey(gameID string) string {
	return fmt.Sprintf("game:%s:state", gameID)
}

// GameStatePattern returns the scan pattern matching every game state key
func (r *CacheKeyStruct) GameStatePattern() string {
	return "game:*:state"
}

// GamePinKey returns the cache key mapping a join pin to a game id
func (r *CacheKeyStruct) GamePinKey(pin string) string {
	return fmt.Sprintf("game:pin:%s", pin)
}

// QuizKey returns the cache key for a quiz definition
func (r *CacheKeyStruct) QuizKey(quizID string) string {
	return fmt.Sprintf("quiz:%s", quizID)
}

// QuizIndexKey returns the set key holding all quiz ids
func (r *CacheKeyStruct) QuizIndexKey() string {
	return "quiz:index"
}

var CacheKey = NewCacheKeyStruct()
