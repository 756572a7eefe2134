package rewrite

import "strings"

// ProxyURLField is the hidden form field carrying the real submission target.
const ProxyURLField = "_proxy_url"

// navigationScript returns the client-side payload that keeps later
// navigation inside the proxy: POSTed forms are re-issued through /browse
// with the response replacing the document, and window.open targets are
// wrapped through /browse as well.
func navigationScript(proxyBase string) string {
	return strings.ReplaceAll(navigationScriptTemplate, "__PROXY_BASE__", proxyBase)
}

const navigationScriptTemplate = `
(function() {
	var PROXY_BASE = '__PROXY_BASE__';

	document.addEventListener('submit', function(e) {
		var form = e.target;
		if (form.method.toLowerCase() !== 'post') {
			return;
		}
		e.preventDefault();

		var formData = new FormData(form);
		var targetUrl = formData.get('_proxy_url') || form.action;
		if (!targetUrl || targetUrl === PROXY_BASE + '/browse') {
			return;
		}

		var params = new URLSearchParams();
		params.set('url', targetUrl);
		formData.forEach(function(value, key) {
			if (key !== '_proxy_url') {
				params.set(key, value);
			}
		});

		fetch(PROXY_BASE + '/browse', {
			method: 'POST',
			headers: {'Content-Type': 'application/x-www-form-urlencoded'},
			body: params
		})
		.then(function(response) { return response.text(); })
		.then(function(html) {
			document.open();
			document.write(html);
			document.close();
		})
		.catch(console.error);
	});

	var originalOpen = window.open;
	window.open = function(url, name, features) {
		if (url && url.indexOf('javascript:') !== 0) {
			var absoluteUrl = new URL(url, window.location.href).href;
			return originalOpen(PROXY_BASE + '/browse?url=' + encodeURIComponent(absoluteUrl), name, features);
		}
		return originalOpen(url, name, features);
	};
})();
`
