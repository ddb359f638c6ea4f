package tsdr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
)

// MockObserver records upstream observations.
type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveUpstream(endpoint string, status int, elapsed time.Duration) {
	m.Called(endpoint, status, elapsed)
}

func TestURLs(t *testing.T) {
	Convey("Given a client with the default base URL", t, func() {
		client := NewClient("", "key", "")

		Convey("It should build the documented paths", func() {
			So(client.BaseURL(), ShouldEqual, DefaultBaseURL)
			So(client.CaseStatusURL(Serial("72131351"), FormatJSON), ShouldEqual,
				DefaultBaseURL+"/casestatus/sn72131351/info.json")
			So(client.CaseStatusURL(Registration("1234567"), FormatXML), ShouldEqual,
				DefaultBaseURL+"/casestatus/rn1234567/info.xml")
			So(client.ContentURL("72131351"), ShouldEqual, DefaultBaseURL+"/casestatus/sn72131351/content")
			So(client.ImageURL("72131351"), ShouldEqual, DefaultBaseURL+"/rawImage/72131351")
			So(client.DocumentsURL("72131351"), ShouldEqual, DefaultBaseURL+"/casedocs/bundle.pdf?sn=72131351")
		})
	})

	Convey("Given a base URL with a trailing slash", t, func() {
		client := NewClient("http://example.test/ts/cd/", "", "")

		Convey("It should be trimmed", func() {
			So(client.BaseURL(), ShouldEqual, "http://example.test/ts/cd")
			So(client.HasAPIKey(), ShouldBeFalse)
		})
	})
}

func TestCaseStatus(t *testing.T) {
	Convey("Given a TSDR upstream", t, func() {
		var (
			gotPath   string
			gotKey    string
			gotAgent  string
			gotAccept string
			status    = http.StatusOK
			body      = `{"trademarks":[{"status":{"serialNumber":72131351}}]}`
		)

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get(APIKeyHeader)
			gotAgent = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "abcd1234efgh", "test-agent")

		Convey("When the upstream answers 200", func() {
			got, err := client.CaseStatus(context.Background(), Serial("72131351"), FormatJSON)

			Convey("It should return the body and send the headers", func() {
				So(err, ShouldBeNil)
				So(string(got), ShouldEqual, body)
				So(gotPath, ShouldEqual, "/casestatus/sn72131351/info.json")
				So(gotKey, ShouldEqual, "abcd1234efgh")
				So(gotAgent, ShouldEqual, "test-agent")
				So(gotAccept, ShouldEqual, "application/json")
			})
		})

		Convey("When requesting XML by registration number", func() {
			body = "<Trademark/>"
			got, err := client.CaseStatus(context.Background(), Registration("1234567"), FormatXML)

			Convey("It should hit the rn path with the xml extension", func() {
				So(err, ShouldBeNil)
				So(string(got), ShouldEqual, "<Trademark/>")
				So(gotPath, ShouldEqual, "/casestatus/rn1234567/info.xml")
				So(gotAccept, ShouldEqual, "application/xml")
			})
		})

		Convey("When the upstream answers 404", func() {
			status = http.StatusNotFound
			body = "no such case"
			_, err := client.CaseStatus(context.Background(), Serial("00000000"), FormatJSON)

			Convey("It should return a generic upstream error", func() {
				So(err, ShouldNotBeNil)
				var tsdrErr *Error
				So(errors.As(err, &tsdrErr), ShouldBeTrue)
				So(tsdrErr.Kind, ShouldEqual, ErrUpstream)
				So(tsdrErr.StatusCode, ShouldEqual, 404)
				So(err.Error(), ShouldEqual, "USPTO API returned 404: Not Found. Error: no such case")
			})
		})

		Convey("When the upstream asks for registration", func() {
			status = http.StatusUnauthorized
			body = `{"message":"You need to register for an API key"}`
			_, err := client.CaseStatus(context.Background(), Serial("72131351"), FormatJSON)

			Convey("It should classify the error as an auth error", func() {
				var tsdrErr *Error
				So(errors.As(err, &tsdrErr), ShouldBeTrue)
				So(tsdrErr.Kind, ShouldEqual, ErrAuth)
				So(tsdrErr.KeyHint, ShouldEqual, "abcd...")
			})
		})
	})

	Convey("Given a client without an API key", t, func() {
		var sawHeader bool

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawHeader = r.Header[http.CanonicalHeaderKey(APIKeyHeader)]
			_, _ = w.Write([]byte("{}"))
		}))
		defer upstream.Close()

		_, err := NewClient(upstream.URL, "", "").CaseStatus(context.Background(), Serial("72131351"), FormatJSON)

		Convey("It should not send the key header", func() {
			So(err, ShouldBeNil)
			So(sawHeader, ShouldBeFalse)
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		upstream := httptest.NewServer(http.NotFoundHandler())
		target := upstream.URL
		upstream.Close()

		_, err := NewClient(target, "key", "").Content(context.Background(), "72131351")

		Convey("It should return a transport error", func() {
			var tsdrErr *Error
			So(errors.As(err, &tsdrErr), ShouldBeTrue)
			So(tsdrErr.Kind, ShouldEqual, ErrTransport)
			So(err.Error(), ShouldNotBeEmpty)
		})
	})
}

func TestImageExists(t *testing.T) {
	Convey("Given an image endpoint", t, func() {
		var (
			method string
			status = http.StatusOK
		)

		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			w.WriteHeader(status)
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "key", "")

		Convey("When the image exists", func() {
			exists, code, err := client.ImageExists(context.Background(), "72131351")

			Convey("It should probe with HEAD and report true", func() {
				So(err, ShouldBeNil)
				So(method, ShouldEqual, http.MethodHead)
				So(exists, ShouldBeTrue)
				So(code, ShouldEqual, 200)
			})
		})

		Convey("When the image is missing or forbidden", func() {
			for _, s := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
				status = s
				exists, code, err := client.ImageExists(context.Background(), "72131351")

				So(err, ShouldBeNil)
				So(exists, ShouldBeFalse)
				So(code, ShouldEqual, s)
			}
		})
	})
}

func TestObserver(t *testing.T) {
	Convey("Given a client with an observer", t, func() {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		defer upstream.Close()

		observer := &MockObserver{}
		observer.On("ObserveUpstream", EndpointContent, http.StatusTeapot, mock.AnythingOfType("time.Duration")).Return()

		client := NewClient(upstream.URL, "key", "", WithObserver(observer), WithHTTPClient(upstream.Client()))
		_, err := client.Content(context.Background(), "72131351")

		Convey("It should report the endpoint and status once", func() {
			So(err, ShouldNotBeNil)
			So(observer.AssertNumberOfCalls(t, "ObserveUpstream", 1), ShouldBeTrue)
			So(observer.AssertExpectations(t), ShouldBeTrue)
		})
	})
}

func TestRedactKey(t *testing.T) {
	Convey("Given keys of different lengths", t, func() {
		So(RedactKey(""), ShouldEqual, "(none)")
		So(RedactKey("abc"), ShouldEqual, "****")
		So(RedactKey("abcdefghij"), ShouldEqual, "abcd...")
	})
}
