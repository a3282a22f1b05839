package thumbserver

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"

	"planet-explorer/planet"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	log "github.com/sirupsen/logrus"
)

const (
	ThumbSize = 256

	// Thumbnails are immutable per scene, so a small LRU suffices.
	cacheEntries = 256
)

// ThumbServer proxies scene thumbnails, caching the PNG bytes. Failures
// render a placeholder so an <img> consumer still gets a picture.
type ThumbServer struct {
	Client *planet.Client
	cache  *lru.Cache[string, []byte]
}

func New(c *planet.Client) *ThumbServer {
	cache, err := lru.New[string, []byte](cacheEntries)
	if err != nil {
		log.Fatalf("thumb cache: %v", err)
	}
	return &ThumbServer{Client: c, cache: cache}
}

func writeErrorThumb(w http.ResponseWriter, err error) {
	img := image.NewRGBA(image.Rectangle{
		Min: image.Point{X: 0, Y: 0},
		Max: image.Point{X: ThumbSize, Y: ThumbSize},
	})

	col := color.RGBA{255, 0, 0, 255}
	point := fixed.Point26_6{X: fixed.Int26_6(0 * 64), Y: fixed.Int26_6(ThumbSize / 2 * 64)}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  point,
	}
	d.DrawString(err.Error())

	if err := png.Encode(w, img); err != nil {
		log.Errorf("thumb placeholder encode: %v", err)
	}
}

func (s *ThumbServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	itemType := r.FormValue("item_type")
	if itemType == "" {
		itemType = "PSScene"
	}
	w.Header().Set("Content-Type", "image/png")

	key := itemType + "/" + id
	if b, ok := s.cache.Get(key); ok {
		w.Write(b)
		return
	}

	apiKey := s.Client.Credential(r.Context(), r.FormValue("api_key"))
	buf := &bytes.Buffer{}
	if err := s.Client.FetchThumb(r.Context(), itemType, id, apiKey, buf); err != nil {
		log.Errorf("thumb proxy failed: %v", err)
		writeErrorThumb(w, err)
		return
	}
	s.cache.Add(key, buf.Bytes())
	w.Write(buf.Bytes())
}
