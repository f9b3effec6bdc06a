// Package links builds the outbound URLs into the operator's provider search
// and plan portal. Builders are pure: they never validate identifiers and the
// caller supplies the clock.
package links

import (
	"net/url"
	"strings"
	"time"
)

const (
	providerSearchBase = "https://rederef-saude.appspot.com/rederef/buscaPrestadores"
	portalBase         = "https://portal.sulamericaseguros.com.br/main.jsp"

	// pt-BR short date and 24h time, as the provider search expects them
	dateLayout = "02/01/2006"
	timeLayout = "15:04:05"
)

// ProviderSearchURL returns the provider-search URL for a plan's API codes at
// the given instant. The codes are embedded verbatim.
func ProviderSearchURL(apiProductCode, apiPlanCode string, now time.Time) string {
	var b strings.Builder
	b.WriteString(providerSearchBase)
	b.WriteString("?login=publico&canal=1")
	b.WriteString("&data=" + EncodeComponent(now.Format(dateLayout)))
	b.WriteString("&hora=" + EncodeComponent(now.Format(timeLayout)))
	b.WriteString("&tipoProduto=M")
	b.WriteString("&produto=" + apiProductCode)
	b.WriteString("&plano=" + apiPlanCode)
	return b.String()
}

// PortalDetailURL returns the portal page describing a plan.
func PortalDetailURL(productCode, planName string) string {
	var b strings.Builder
	b.WriteString(portalBase)
	b.WriteString("?lumPageId=8A488A0C15813A720115814200FE046B")
	b.WriteString("&lumChannelId=8A488A0C15813A72011581407CCF0168")
	b.WriteString("&lumRTI=sai.service.redereferenciada.detalhes_plano")
	b.WriteString("&lumRTSI=8A619BA6464E931F01465CE644FD3EAB")
	b.WriteString("&lumRCli=1&codTipoNegocio=S")
	b.WriteString("&codProduto=" + productCode)
	b.WriteString("&planoProduto=" + EncodeComponent(planName))
	b.WriteString("&codTipoContrato=&planoANSTipoContrato=")
	return b.String()
}

// componentUnescaper restores the marks QueryEscape encodes but
// encodeURIComponent leaves alone, and writes spaces as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s for use as a single query value. Only
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) are left as is.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
