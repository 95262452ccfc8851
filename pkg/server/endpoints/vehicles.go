package endpoints

import (
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server"
)

var vehicleFields = []string{
	"name", "model", "manufacturer", "cost_in_credits", "length", "crew",
}

var vehicles = Resource[model.Vehicle, model.VehicleRepr]{
	Name:      "vehicles",
	Required:  vehicleFields,
	Creatable: vehicleFields,
	Updatable: vehicleFields,
	Project:   (*model.Vehicle).APIRepr,
}

func RegisterVehiclesEndpoints(s *server.Server) {
	vehicles.Register(s, s.Vehicles)
}
