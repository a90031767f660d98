package openapi

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.json
var spec []byte

// Spec returns the OpenAPI document describing the routes below.
func Spec() []byte { return spec }

type ServerInterface interface {
	// (GET /)
	GetHello(w http.ResponseWriter, r *http.Request, params GetHelloParams)
	// (GET /mensatoshi)
	GetMensatoshi(w http.ResponseWriter, r *http.Request, params GetMensatoshiParams)
	// (GET /mensatoshi/history)
	GetPriceHistory(w http.ResponseWriter, r *http.Request, params GetPriceHistoryParams)
	// (GET /mensabeer)
	GetMensabeer(w http.ResponseWriter, r *http.Request, params GetMensabeerParams)
	// (GET /congressbeer)
	GetCongressbeer(w http.ResponseWriter, r *http.Request, params GetCongressbeerParams)
	// (GET /shark)
	GetShark(w http.ResponseWriter, r *http.Request, params GetSharkParams)
	// (GET /teapot)
	GetTeapot(w http.ResponseWriter, r *http.Request)
	// (GET /openapi.json)
	GetOpenAPI(w http.ResponseWriter, r *http.Request)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ServerInterfaceWrapper binds query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) bindFormat(w http.ResponseWriter, r *http.Request, dest **Format) bool {
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "format", Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) GetHello(w http.ResponseWriter, r *http.Request) {
	var params GetHelloParams
	if !siw.bindFormat(w, r, &params.Format) {
		return
	}
	siw.Handler.GetHello(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetMensatoshi(w http.ResponseWriter, r *http.Request) {
	var params GetMensatoshiParams
	if !siw.bindFormat(w, r, &params.Format) {
		return
	}
	siw.Handler.GetMensatoshi(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	var params GetPriceHistoryParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	siw.Handler.GetPriceHistory(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetMensabeer(w http.ResponseWriter, r *http.Request) {
	var params GetMensabeerParams
	if !siw.bindFormat(w, r, &params.Format) {
		return
	}
	siw.Handler.GetMensabeer(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetCongressbeer(w http.ResponseWriter, r *http.Request) {
	var params GetCongressbeerParams
	if err := runtime.BindQueryParameter("form", true, false, "satoshi", r.URL.Query(), &params.Satoshi); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "satoshi", Err: err})
		return
	}
	if !siw.bindFormat(w, r, &params.Format) {
		return
	}
	siw.Handler.GetCongressbeer(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetShark(w http.ResponseWriter, r *http.Request) {
	var params GetSharkParams
	if !siw.bindFormat(w, r, &params.Format) {
		return
	}
	siw.Handler.GetShark(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetTeapot(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetTeapot(w, r)
}

func (siw *ServerInterfaceWrapper) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetOpenAPI(w, r)
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions mounts si on the given router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/", wrapper.GetHello)
		r.Get(options.BaseURL+"/mensatoshi", wrapper.GetMensatoshi)
		r.Get(options.BaseURL+"/mensatoshi/history", wrapper.GetPriceHistory)
		r.Get(options.BaseURL+"/mensabeer", wrapper.GetMensabeer)
		r.Get(options.BaseURL+"/congressbeer", wrapper.GetCongressbeer)
		r.Get(options.BaseURL+"/shark", wrapper.GetShark)
		r.Get(options.BaseURL+"/teapot", wrapper.GetTeapot)
		r.Get(options.BaseURL+"/openapi.json", wrapper.GetOpenAPI)
	})
	return r
}
