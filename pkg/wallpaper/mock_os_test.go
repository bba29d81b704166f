package wallpaper

import (
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/stretchr/testify/mock"
)

// MockOS is a mock implementation of the OS interface.
type MockOS struct {
	mock.Mock
}

func (m *MockOS) DesktopSize() (geometry.Rect, error) {
	args := m.Called()
	return args.Get(0).(geometry.Rect), args.Error(1)
}

func (m *MockOS) SetWallpaper(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
