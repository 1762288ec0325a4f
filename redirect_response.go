package viewkit

import (
	"net/http"
	"net/url"
)

type redirectResponse struct {
	url  string
	code int
}

func (resp redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, resp.url, resp.code)
	return nil
}

// Redirect sends the client to url with 303 See Other, the code that turns
// a POST into a follow-up GET.
//
//	return viewkit.Redirect("/widgets/" + widget.ID)
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode sends the client to url with an explicit redirect code
// (301, 302, 303, 307 or 308).
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

type redirectBackResponse struct {
	fallback string
	code     int
}

func (resp redirectBackResponse) Render(w http.ResponseWriter, r *http.Request) error {
	target := resp.fallback
	if ref := r.Header.Get("Referer"); ref != "" && sameHost(ref, r) {
		target = ref
	}
	http.Redirect(w, r, target, resp.code)
	return nil
}

// RedirectBack returns the client to the page it came from, falling back to
// the given URL when the Referer header is missing or points at another
// host. Uses 303 See Other.
//
//	return viewkit.RedirectBack("/")
func RedirectBack(fallback string) Response {
	return redirectBackResponse{fallback: fallback, code: http.StatusSeeOther}
}

// RedirectBackWithCode is RedirectBack with an explicit redirect code.
func RedirectBackWithCode(fallback string, code int) Response {
	return redirectBackResponse{fallback: fallback, code: code}
}

// sameHost accepts relative URLs and absolute URLs on the request's host.
func sameHost(raw string, r *http.Request) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Host == "" || parsed.Host == r.Host
}

type goneResponse struct{}

func (goneResponse) Render(w http.ResponseWriter, r *http.Request) error {
	http.Error(w, http.StatusText(http.StatusGone), http.StatusGone)
	return nil
}

// Gone answers with 410 for resources that have been removed for good.
func Gone() Response {
	return goneResponse{}
}
