package layout_test

import (
	"errors"
	"testing"

	"github.com/bnema/tiledash/internal/domain/layout"
	mock_layout "github.com/bnema/tiledash/internal/domain/layout/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWindow_CloseEmitsEventsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mock_layout.NewMockAppHost(ctrl)
	st := layout.NewStack()
	w := layout.NewWindow()
	w.SetAppHost(host)
	st.Add(w, layout.AddOptions{})
	st.Add(layout.NewWindow(), layout.AddOptions{})

	var seen []string
	record := func(event string, _ any) { seen = append(seen, event) }
	gomock.InOrder(
		host.EXPECT().Emit(layout.EventBeforeUnload, nil).Do(record),
		host.EXPECT().Emit(layout.EventBeforeClose, nil).Do(record),
		host.EXPECT().Emit(layout.EventUnload, nil).Do(record),
		host.EXPECT().Emit(layout.EventClose, nil).Do(record),
	)
	w.OnClose = func(*layout.Window) { seen = append(seen, "hook") }

	w.Close()

	assert.Equal(t, []string{"beforeunload", "beforeclose", "hook", "unload", "close"}, seen)
	assert.Nil(t, w.Parent())
	assert.Equal(t, 1, st.WindowCount())
}

func TestWindow_CloseWithNoRemove(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mock_layout.NewMockAppHost(ctrl)
	host.EXPECT().Emit(gomock.Any(), gomock.Any()).Times(4)
	st := layout.NewStack()
	w := layout.NewWindow()
	w.SetAppHost(host)
	st.Add(w, layout.AddOptions{})

	w.CloseWith(layout.CloseOptions{NoRemove: true})

	assert.Same(t, st, w.Parent())
}

func TestWindow_LoadRoutesThroughInheritedRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := mock_layout.NewMockRouter(ctrl)
	host := mock_layout.NewMockAppHost(ctrl)
	d := layout.NewDashboard()
	d.SetRouter(router)

	router.EXPECT().
		Route(layout.OpenRequest{Path: "/apps/clock", Name: "clock"}).
		Return(host, nil)
	host.EXPECT().Load(layout.OpenRequest{Path: "/apps/clock", Query: map[string]string{"tz": "UTC"}, Name: "clock"}).Return(nil)
	host.EXPECT().Title().Return("Clock").AnyTimes()
	host.EXPECT().State().Return(layout.AppStateReady)

	w, err := d.Open(layout.OpenRequest{Path: "/apps/clock", Name: "clock"})
	require.NoError(t, err)
	require.NoError(t, w.Load(layout.OpenRequest{Path: "/apps/clock", Query: map[string]string{"tz": "UTC"}}))

	assert.Same(t, host, w.AppHost())
	assert.Equal(t, "Clock", w.Title())
	assert.Equal(t, layout.AppStateReady, w.State())
	assert.Equal(t, "clock", w.Name())
}

func TestWindow_OpenKeepsWindowOnRouteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := mock_layout.NewMockRouter(ctrl)
	routeErr := errors.New("no such app")
	router.EXPECT().Route(gomock.Any()).Return(nil, routeErr)
	st := layout.NewStack()
	st.SetRouter(router)

	w, err := st.Open(layout.OpenRequest{Path: "/missing"})

	require.ErrorIs(t, err, routeErr)
	require.NotNil(t, w)
	assert.Nil(t, w.AppHost())
	assert.Equal(t, 1, st.WindowCount())
	assert.Equal(t, layout.AppStateIdle, w.State())
}

func TestWindow_TitleFallsBackToPath(t *testing.T) {
	w := newWindow(t, "/plain")

	assert.Equal(t, "/plain", w.Title())

	w.SetTitle("Explicit")
	assert.Equal(t, "Explicit", w.Title())
	assert.Equal(t, "Explicit", w.Config().Title)
}

func TestWindow_ConnectRoutesRestoredWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := mock_layout.NewMockRouter(ctrl)
	host := mock_layout.NewMockAppHost(ctrl)
	st := layout.NewStack()
	st.SetRouter(router)
	require.NoError(t, st.SetConfig(layout.Config{
		Type:    layout.TypeStack,
		Windows: []layout.Config{{Type: layout.TypeWindow, Path: "/apps/clock"}},
	}))
	w := st.Windows()[0]
	assert.Nil(t, w.AppHost())

	router.EXPECT().Route(layout.OpenRequest{Path: "/apps/clock"}).Return(host, nil).Times(1)

	require.NoError(t, w.Connect())
	require.NoError(t, w.Connect())
	assert.Same(t, host, w.AppHost())
}
