package service

import "github.com/quizdash/quizdash-backend/internal/model"

// predefinedQuizzes is the bundled catalog. It is loaded into the store at
// bootstrap (see QuizService.SeedCatalog); runtime reads always go through
// the store so the catalog stays editable like any other quiz.
var predefinedQuizzes = []model.Quiz{
	{
		ID:    "general",
		Title: "General Knowledge",
		Type:  model.QuizTypePredefined,
		Questions: []model.Question{
			{
				Text:               "What is the capital of France?",
				Options:            []string{"Berlin", "Madrid", "Paris", "Rome"},
				CorrectAnswerIndex: 2,
			},
			{
				Text:               "Which planet is known as the Red Planet?",
				Options:            []string{"Earth", "Mars", "Jupiter", "Venus"},
				CorrectAnswerIndex: 1,
			},
			{
				Text:               "What is the largest ocean on Earth?",
				Options:            []string{"Atlantic", "Indian", "Arctic", "Pacific"},
				CorrectAnswerIndex: 3,
				IsDoublePoints:     true,
			},
			{
				Text:               "Who wrote 'To Kill a Mockingbird'?",
				Options:            []string{"Harper Lee", "J.K. Rowling", "Ernest Hemingway", "Mark Twain"},
				CorrectAnswerIndex: 0,
			},
		},
	},
	{
		ID:    "tech",
		Title: "Tech Trivia",
		Type:  model.QuizTypePredefined,
		Questions: []model.Question{
			{
				Text:               "What does 'CPU' stand for?",
				Options:            []string{"Central Processing Unit", "Computer Personal Unit", "Central Processor Unit", "Control Processing Unit"},
				CorrectAnswerIndex: 0,
			},
			{
				Text:               "Which company developed the JavaScript programming language?",
				Options:            []string{"Microsoft", "Apple", "Netscape", "Sun Microsystems"},
				CorrectAnswerIndex: 2,
			},
			{
				Text:               "What is the main function of a DNS server?",
				Options:            []string{"To store websites", "To resolve domain names to IP addresses", "To send emails", "To secure network connections"},
				CorrectAnswerIndex: 1,
				IsDoublePoints:     true,
			},
		},
	},
	{
		ID:    "geo",
		Title: "World Geography",
		Type:  model.QuizTypePredefined,
		Questions: []model.Question{
			{
				Text:               "What is the longest river in the world?",
				Options:            []string{"Amazon River", "Nile River", "Yangtze River", "Mississippi River"},
				CorrectAnswerIndex: 1,
			},
			{
				Text:               "Which desert is the largest in the world?",
				Options:            []string{"Sahara Desert", "Arabian Desert", "Gobi Desert", "Antarctic Polar Desert"},
				CorrectAnswerIndex: 3,
			},
			{
				Text:               "What is the capital of Australia?",
				Options:            []string{"Sydney", "Melbourne", "Canberra", "Perth"},
				CorrectAnswerIndex: 2,
				IsDoublePoints:     true,
			},
		},
	},
}
