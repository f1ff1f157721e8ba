package web

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>crossbot</title>
<style>
body { font-family: monospace; background: #101418; color: #d0d7de; margin: 2rem; }
h1 { color: #73f59f; }
table { border-collapse: collapse; margin-top: 1rem; }
td, th { border: 1px solid #30363d; padding: 4px 10px; text-align: right; }
th { color: #7d56f4; }
.buy { color: #73f59f; }
.sell { color: #f47067; }
#log { margin-top: 1rem; max-height: 24rem; overflow-y: auto; }
</style>
</head>
<body>
<h1>crossbot</h1>
<div id="status">loading...</div>
<div id="log"><table id="evals"><tr>
<th>time</th><th>action</th><th>price</th><th>capital</th><th>position</th><th>value</th><th>volatility %</th><th>regime</th>
</tr></table></div>
<script>
async function refreshStatus() {
  const res = await fetch('/status');
  const s = await res.json();
  document.getElementById('status').textContent =
    'capital ' + s.capital + ' | position ' + s.position +
    ' | value ' + s.portfolio_value + ' | trades ' + s.trade_count;
}
refreshStatus();
setInterval(refreshStatus, 5000);

const source = new EventSource('/evaluations/stream');
source.onmessage = function (event) {
  const e = JSON.parse(event.data);
  const table = document.getElementById('evals');
  const row = table.insertRow(1);
  row.className = e.action === 'BUY' ? 'buy' : e.action === 'SELL' ? 'sell' : '';
  [new Date(e.ts).toLocaleTimeString(), e.action, e.price, e.capital,
   e.position, e.portfolio_value, e.volatility_pct, e.regime]
    .forEach(function (v) { row.insertCell().textContent = v; });
  while (table.rows.length > 200) { table.deleteRow(-1); }
};
</script>
</body>
</html>
`
