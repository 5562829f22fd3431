// Package files describes downloadable project attachments: their display
// category and their size as reported by the server hosting them.
package files

import (
	"context"
	"math"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/folio/pkg/project"
)

// UnknownSize is reported when a file's size cannot be determined.
const UnknownSize = "Unknown size"

var units = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders n bytes in base-1024 units with at most two decimals.
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	i, div := 0, int64(1)
	for i < len(units)-1 && n >= div*1024 {
		i++
		div *= 1024
	}
	v := math.Round(float64(n)/float64(div)*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

// Kind is a display category for a file.
type Kind string

const (
	KindCAD         Kind = "cad"
	KindModel       Kind = "model"
	KindDrawing     Kind = "drawing"
	KindElectronics Kind = "electronics"
	KindRobotics    Kind = "robotics"
	KindCode        Kind = "code"
	KindData        Kind = "data"
	KindConfig      Kind = "config"
	KindSpreadsheet Kind = "spreadsheet"
	KindDocument    Kind = "document"
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
	KindArchive     Kind = "archive"
	KindBinary      Kind = "binary"
	KindGeneric     Kind = "generic"
)

var kinds = map[string]Kind{}

func init() {
	for kind, exts := range map[Kind][]string{
		KindCAD:         {"sldprt", "sldasm", "step", "stp", "igs", "iges", "f3d", "fcstd"},
		KindModel:       {"stl", "3mf", "blend", "fbx", "obj"},
		KindDrawing:     {"slddrw", "dxf", "dwg"},
		KindElectronics: {"sch", "brd", "kicad_pcb", "gerber", "lbr", "ino"},
		KindRobotics:    {"roslaunch", "launch", "urdf", "bag"},
		KindCode:        {"py", "cpp", "c", "h", "js", "ts", "tsx", "jsx", "java", "sh", "bat", "html", "css", "go"},
		KindData:        {"json", "bom"},
		KindConfig:      {"xml", "yaml", "yml"},
		KindSpreadsheet: {"csv", "xlsx", "xls"},
		KindDocument:    {"pdf", "doc", "docx", "pptx", "md", "txt"},
		KindImage:       {"jpg", "jpeg", "png", "gif", "svg", "webp", "bmp"},
		KindVideo:       {"mp4", "mov", "avi", "wmv", "flv", "webm"},
		KindArchive:     {"zip", "rar", "7z", "tar", "gz", "tgz"},
		KindBinary:      {"exe", "appimage", "deb"},
	} {
		for _, ext := range exts {
			kinds[ext] = kind
		}
	}
}

// KindOf classifies name by its extension.
func KindOf(name string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if k, ok := kinds[ext]; ok {
		return k
	}
	return KindGeneric
}

// Info is a file with its resolved URL, category and formatted size.
type Info struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Kind Kind   `json:"kind"`
	Size string `json:"size"`
}

// Options configures a Sizer.
type Options struct {
	// BaseURL resolves relative file URLs.
	BaseURL string
	Timeout time.Duration
	// Parallel bounds concurrent probes. Zero means four.
	Parallel int
	Logger   *zap.Logger
}

// Sizer probes attachment sizes over HTTP.
type Sizer struct {
	base     string
	http     *resty.Client
	parallel int
	log      *zap.Logger
}

// NewSizer builds a Sizer.
func NewSizer(opts Options) *Sizer {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 4
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Sizer{
		base:     opts.BaseURL,
		http:     resty.New().SetTimeout(opts.Timeout),
		parallel: opts.Parallel,
		log:      opts.Logger,
	}
}

// Describe returns one Info per file, in order. Each size comes from a HEAD
// request's Content-Length, falling back to downloading the body. Failures
// yield UnknownSize; Describe itself only fails when ctx is done.
func (s *Sizer) Describe(ctx context.Context, list []project.File) ([]Info, error) {
	out := make([]Info, len(list))
	for i, f := range list {
		out[i] = Info{
			Name: f.Name,
			URL:  project.ResolveURL(s.base, f.URL),
			Kind: KindOf(f.Name),
			Size: UnknownSize,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i := range out {
		g.Go(func() error {
			size, err := s.size(gctx, out[i].URL)
			if err != nil {
				s.log.Debug("file size probe failed", zap.String("url", out[i].URL), zap.Error(err))
				return nil
			}
			out[i].Size = FormatSize(size)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Sizer) size(ctx context.Context, url string) (int64, error) {
	resp, err := s.http.R().SetContext(ctx).Head(url)
	if err == nil && !resp.IsError() {
		if n, perr := strconv.ParseInt(resp.Header().Get("Content-Length"), 10, 64); perr == nil && n >= 0 {
			return n, nil
		}
	}

	resp, err = s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, &statusError{code: resp.StatusCode()}
	}
	return int64(len(resp.Body())), nil
}

type statusError struct{ code int }

func (e *statusError) Error() string { return "files: unexpected status " + strconv.Itoa(e.code) }
