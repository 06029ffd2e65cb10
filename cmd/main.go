package main

import (
	"os"

	"github.com/drabenstadtj/PittsburghFoodAccessMap/config"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/routes"
	"github.com/drabenstadtj/PittsburghFoodAccessMap/utils"
)

func main() {
	config.InitDB()
	utils.InitSES()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
