package service

import "github.com/simpleweather/backend/internal/domain"

func ptr[T any](v T) *T { return &v }

// sampleResponse is a complete London response; dt is 2015-10-26 00:00:00 UTC
func sampleResponse() *domain.WeatherResponse {
	return &domain.WeatherResponse{
		Name: ptr("London"),
		Sys: &domain.SysBlock{
			Country: ptr("GB"),
			Sunrise: ptr(int64(1445842800)), // 07:00 UTC
			Sunset:  ptr(int64(1445878800)), // 17:00 UTC
		},
		Weather: []domain.Condition{{ID: ptr(500), Description: ptr("light rain")}},
		Main: &domain.MainBlock{
			Temp:     ptr(15.5),
			Humidity: ptr(81.0),
			Pressure: ptr(1012.0),
		},
		Dt: ptr(int64(1445817600)),
	}
}
