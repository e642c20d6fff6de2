package web

import "html/template"

// pageData feeds the single-page template. Output1 carries either the
// recommended intervention, the fallback message, or an error line.
type pageData struct {
	Question string
	Output1  string
	Output2  string
	Output3  string
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Road Safety Intervention GPT</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
            margin: 0;
            padding: 2.5rem;
            background: linear-gradient(135deg, #eef2f7, #f8fafc);
            color: #2a2a2a;
        }
        .container {
            max-width: 850px;
            margin: 0 auto;
            background: #ffffff;
            padding: 2.5rem;
            border-radius: 16px;
            box-shadow: 0 12px 28px rgba(0,0,0,0.08);
        }
        h1, h2 {
            color: #0f172a;
            letter-spacing: -0.5px;
            margin-bottom: 0.5rem;
        }
        form {
            display: flex;
            flex-direction: column;
            gap: 1.2rem;
        }
        textarea {
            font-family: inherit;
            font-size: 1rem;
            padding: 1rem;
            border: 1px solid #d1d5db;
            border-radius: 10px;
            min-height: 120px;
            background: #f9fafb;
        }
        textarea:focus {
            border-color: #3b82f6;
            box-shadow: 0 0 0 4px rgba(59,130,246,0.15);
            outline: none;
        }
        button {
            font-size: 1rem;
            padding: 0.9rem;
            background-color: #2563eb;
            color: white;
            border: none;
            border-radius: 10px;
            cursor: pointer;
            font-weight: 600;
            letter-spacing: 0.3px;
        }
        button:hover { background-color: #1d4ed8; }
        .results {
            margin-top: 2.5rem;
            display: flex;
            flex-direction: column;
            gap: 1.75rem;
        }
        .output-box {
            background: #fdfdfd;
            border: 1px solid #e5e7eb;
            border-radius: 12px;
            padding: 1.5rem;
            box-shadow: 0 6px 16px rgba(0,0,0,0.05);
        }
        h3 {
            margin-top: 0;
            color: #1d4ed8;
            border-bottom: 2px solid #e5e7eb;
            padding-bottom: 0.5rem;
            font-size: 1.15rem;
        }
        pre {
            white-space: pre-wrap;
            word-wrap: break-word;
            font-family: "SF Mono", "Consolas", monospace;
            font-size: 0.95rem;
            color: #374151;
            line-height: 1.6;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Road Safety Intervention GPT</h1>
        <p>Describe a road safety issue to get analysis and recommendations from the database.</p>

        <form action="/process" method="POST">
            <label for="question"><strong>Describe the issue:</strong></label>
            <textarea name="question" id="question" rows="5" placeholder="Enter Your Intervention">{{.Question}}</textarea>
            <button type="submit">Analyze Issue</button>
        </form>

        {{if or .Output1 .Output2 .Output3}}
        <div class="results">
            <h2>Analysis Results</h2>

            <div class="output-box">
                <h3>Recommended Intervention(s)</h3>
                <pre>{{.Output1}}</pre>
            </div>

            {{if .Output2}}
            <div class="output-box">
                <h3>Explanation &amp; Justification</h3>
                <pre>{{.Output2}}</pre>
            </div>
            {{end}}

            {{if .Output3}}
            <div class="output-box">
                <h3>Database Reference</h3>
                <pre>{{.Output3}}</pre>
            </div>
            {{end}}
        </div>
        {{end}}
    </div>
</body>
</html>
`
