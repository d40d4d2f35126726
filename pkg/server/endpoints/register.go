package endpoints

import (
	"github.com/rocketresume/rocket/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterPersonasEndpoints(srv)
	RegisterTemplatesEndpoints(srv)
	RegisterResumesEndpoints(srv)
	RegisterJobsEndpoints(srv)
	RegisterConversationEndpoints(srv)
}
