package api

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AI QR Code Generator</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #0a0a0a;
    color: #e0e0e0;
    display: flex;
    justify-content: center;
    min-height: 100vh;
    padding: 32px 16px;
  }
  .card {
    background: #1a1a1a;
    border: 1px solid #333;
    border-radius: 16px;
    padding: 32px;
    max-width: 820px;
    width: 100%;
  }
  h1 { font-size: 22px; font-weight: 600; margin-bottom: 8px; }
  .subtitle { color: #888; font-size: 14px; margin-bottom: 24px; }
  .tabs { display: flex; gap: 8px; margin-bottom: 24px; }
  .tabs button {
    flex: 1; padding: 10px; border-radius: 8px; border: 1px solid #333;
    background: #111; color: #aaa; cursor: pointer; font-size: 14px;
  }
  .tabs button.active { background: #6b46c1; color: #fff; border-color: #6b46c1; }
  .row { display: flex; gap: 24px; flex-wrap: wrap; }
  .col { flex: 1; min-width: 280px; }
  label { display: block; font-size: 13px; color: #aaa; margin: 12px 0 6px; }
  textarea, select, input[type=text] {
    width: 100%; background: #111; color: #e0e0e0; border: 1px solid #333;
    border-radius: 8px; padding: 10px; font-size: 14px;
  }
  .radios { display: flex; gap: 16px; font-size: 14px; }
  .go {
    margin-top: 16px; width: 100%; padding: 12px; border: 0; border-radius: 8px;
    background: #6b46c1; color: #fff; font-size: 15px; cursor: pointer;
  }
  .out {
    min-height: 300px; display: flex; align-items: center; justify-content: center;
    background: #111; border-radius: 12px; border: 1px solid #333;
  }
  .out img { max-width: 100%; image-rendering: pixelated; }
  .msg { margin-top: 12px; font-size: 14px; color: #bbb; word-break: break-all; }
  .msg a { color: #4ade80; }
  .download { display: none; margin-top: 8px; color: #4ade80; font-size: 14px; }
  .hidden { display: none; }
</style>
</head>
<body>
<div class="card">
  <h1>AI QR Code Generator</h1>
  <p class="subtitle">Tạo QR Code độc đáo với AI - Hoàn toàn miễn phí!</p>

  <div class="tabs">
    <button id="tab-basic" class="active">QR Code Cơ Bản</button>
    <button id="tab-ai">AI QR Code</button>
  </div>

  <div class="row">
    <div class="col">
      <label for="text">Nội dung QR Code</label>
      <textarea id="text" rows="3" placeholder="Nhập URL, text, hoặc bất kỳ nội dung nào..."></textarea>

      <div id="ai-fields" class="hidden">
        <label>Chọn AI Engine</label>
        <div class="radios">
          <label><input type="radio" name="provider" value="free" checked> Miễn phí</label>
          <label><input type="radio" name="provider" value="openai"> Premium</label>
        </div>
        <label for="prompt">Mô tả hình ảnh AI (Tùy chọn)</label>
        <textarea id="prompt" rows="2" placeholder="Mô tả hình ảnh bạn muốn AI tạo làm background..."></textarea>
      </div>

      <label for="style">Phong cách</label>
      <select id="style"></select>

      <button class="go" id="go">Tạo QR Code</button>
    </div>

    <div class="col">
      <div class="out" id="out"><span class="msg">Chưa có QR code</span></div>
      <a class="download" id="download" download="qrcode.png">Tải xuống</a>
      <div class="msg" id="msg"></div>
    </div>
  </div>
</div>
<script>
(function() {
  var mode = 'basic';
  var styles = [];
  var textEl = document.getElementById('text');
  var promptEl = document.getElementById('prompt');
  var styleEl = document.getElementById('style');
  var aiFields = document.getElementById('ai-fields');
  var out = document.getElementById('out');
  var msg = document.getElementById('msg');
  var dl = document.getElementById('download');
  var tabBasic = document.getElementById('tab-basic');
  var tabAI = document.getElementById('tab-ai');

  function clearChildren(el) {
    while (el.firstChild) el.removeChild(el.firstChild);
  }

  function fillStyles() {
    var keep = styleEl.value;
    clearChildren(styleEl);
    styles.forEach(function(s) {
      if (mode === 'ai' && s.name === 'default') return;
      var opt = document.createElement('option');
      opt.value = s.name;
      opt.textContent = s.name;
      styleEl.appendChild(opt);
    });
    styleEl.value = keep;
    if (!styleEl.value) styleEl.value = mode === 'ai' ? 'anime' : 'default';
  }

  function setMode(m) {
    mode = m;
    tabBasic.className = m === 'basic' ? 'active' : '';
    tabAI.className = m === 'ai' ? 'active' : '';
    aiFields.className = m === 'ai' ? '' : 'hidden';
    fillStyles();
  }

  function showMessage(text) {
    clearChildren(msg);
    var match = text.match(/https?:\/\/\S+/);
    if (!match) {
      msg.textContent = text;
      return;
    }
    msg.appendChild(document.createTextNode(text.slice(0, match.index)));
    var a = document.createElement('a');
    a.setAttribute('href', match[0]);
    a.setAttribute('target', '_blank');
    a.setAttribute('rel', 'noopener');
    a.textContent = match[0];
    msg.appendChild(a);
  }

  function show(data) {
    clearChildren(out);
    if (data.image) {
      var img = document.createElement('img');
      img.setAttribute('alt', 'QR Code');
      img.setAttribute('src', data.image);
      out.appendChild(img);
      dl.setAttribute('href', data.image);
      dl.style.display = 'inline-block';
    } else {
      dl.style.display = 'none';
    }
    showMessage(data.message || data.error || '');
  }

  function provider() {
    var checked = document.querySelector('input[name=provider]:checked');
    return checked ? checked.value : 'free';
  }

  function generate() {
    var url = '/api/qr';
    var body = { text: textEl.value, style: styleEl.value };
    if (mode === 'ai') {
      url = '/api/qr/ai';
      body.prompt = promptEl.value;
      body.provider = provider();
    }
    fetch(url, {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify(body)
    })
      .then(function(r) { return r.json(); })
      .then(show)
      .catch(function() { show({ message: 'Lỗi kết nối, vui lòng thử lại.' }); });
  }

  tabBasic.addEventListener('click', function() { setMode('basic'); });
  tabAI.addEventListener('click', function() { setMode('ai'); });
  document.getElementById('go').addEventListener('click', generate);

  fetch('/api/styles')
    .then(function(r) { return r.json(); })
    .then(function(data) { styles = data; fillStyles(); });
})();
</script>
</body>
</html>`
