package internal

import (
	"net/http"

	"fittrack/internal/controllers"
	"fittrack/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/today", http.HandlerFunc(apiController.GetToday))
	routers.Get("/progress", http.HandlerFunc(apiController.GetProgress))
	routers.Get("/weights", http.HandlerFunc(apiController.GetWeights))
	routers.Post("/weights", http.HandlerFunc(apiController.RecordWeight))
	routers.Post("/workouts/complete", http.HandlerFunc(apiController.CompleteWorkout))
	routers.Post("/meals/complete", http.HandlerFunc(apiController.CompleteMeal))
	routers.Get("/notifications", http.HandlerFunc(apiController.GetNotifications))
	routers.Get("/milestones", http.HandlerFunc(apiController.GetMilestones))
	routers.Get("/workouts", http.HandlerFunc(apiController.GetWorkouts))
	routers.Get("/meals", http.HandlerFunc(apiController.GetMeals))
	routers.Get("/guidelines", http.HandlerFunc(apiController.GetGuidelines))
	return routers
}
