package proxy

// Landing page with the URL-entry form. Served verbatim from /.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>&#128274; SecureProxy - Anonymous Web Browser</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            display: flex;
            flex-direction: column;
        }
        .header {
            background: rgba(255, 255, 255, 0.1);
            backdrop-filter: blur(10px);
            padding: 1rem 0;
            box-shadow: 0 2px 20px rgba(0,0,0,0.1);
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 0 2rem; }
        .logo { font-size: 2rem; font-weight: bold; color: white; margin-bottom: 0.5rem; }
        .tagline { color: rgba(255, 255, 255, 0.8); font-size: 1.1rem; }
        .nav-bar {
            background: white;
            border-radius: 15px;
            padding: 1rem;
            margin: 2rem 0;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .url-form { display: flex; gap: 1rem; margin-bottom: 1rem; }
        .url-input {
            flex: 1;
            padding: 0.75rem 1rem;
            border: 2px solid #e1e5e9;
            border-radius: 8px;
            font-size: 1rem;
        }
        .url-input:focus { outline: none; border-color: #667eea; }
        .browse-btn {
            background: #667eea;
            color: white;
            border: none;
            padding: 0.75rem 2rem;
            border-radius: 8px;
            font-size: 1rem;
            cursor: pointer;
        }
        .browse-btn:hover { background: #5a6fd8; }
        .nav-buttons { display: flex; gap: 0.5rem; }
        .nav-btn {
            background: #f8f9fa;
            border: 1px solid #dee2e6;
            padding: 0.5rem 1rem;
            border-radius: 6px;
            cursor: pointer;
            font-size: 0.9rem;
        }
        .nav-btn:hover { background: #e9ecef; }
        .content {
            flex: 1;
            background: white;
            margin: 0 2rem 2rem;
            border-radius: 15px;
            padding: 3rem;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .welcome { text-align: center; color: #495057; }
        .welcome h2 { font-size: 2.5rem; margin-bottom: 1rem; color: #343a40; }
        .features {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 2rem;
            margin-top: 3rem;
        }
        .feature {
            text-align: center;
            padding: 2rem;
            border-radius: 10px;
            background: #f8f9fa;
        }
        .feature-icon { font-size: 3rem; margin-bottom: 1rem; }
        .feature h3 { margin-bottom: 1rem; color: #495057; }
    </style>
</head>
<body>
    <div class="header">
        <div class="container">
            <div class="logo">&#128274; SecureProxy</div>
            <div class="tagline">Browse the web anonymously and bypass restrictions</div>
        </div>
    </div>

    <div class="container">
        <div class="nav-bar">
            <form class="url-form" action="/browse" method="get">
                <input type="text" name="url" class="url-input" placeholder="Enter website URL (e.g., google.com, reddit.com)" required>
                <button type="submit" class="browse-btn">Browse</button>
            </form>
            <div class="nav-buttons">
                <button class="nav-btn" onclick="history.back()">&#8592; Back</button>
                <button class="nav-btn" onclick="history.forward()">Forward &#8594;</button>
                <button class="nav-btn" onclick="location.reload()">&#128260; Refresh</button>
                <button class="nav-btn" onclick="location.href='/'">&#127968; Home</button>
            </div>
        </div>

        <div class="content">
            <div class="welcome">
                <h2>Ready to browse...</h2>
                <p>Welcome to SecureProxy</p>
                <p>Enter any website URL above to browse anonymously. Your traffic will be routed through our secure proxy servers, helping you bypass local network restrictions and maintain privacy.</p>

                <div class="features">
                    <div class="feature">
                        <div class="feature-icon">&#128737;</div>
                        <h3>Anonymous Browsing</h3>
                        <p>Your real IP address is hidden from the websites you visit</p>
                    </div>
                    <div class="feature">
                        <div class="feature-icon">&#128640;</div>
                        <h3>Bypass Restrictions</h3>
                        <p>Access blocked websites and content from anywhere</p>
                    </div>
                    <div class="feature">
                        <div class="feature-icon">&#128274;</div>
                        <h3>Secure Connection</h3>
                        <p>All traffic is encrypted and routed through secure servers</p>
                    </div>
                </div>
            </div>
        </div>
    </div>
</body>
</html>
`
